package mcpserver

// ProposalFormatContract describes the canonical card proposal format
// that LLM consumers should follow when proposing work items.
const ProposalFormatContract = `# Raido Card Proposal Contract

Every kanban card proposed through the propose_card tool MUST follow
this structure.

## Structure

` + "```" + `json
{
  "title": "Short imperative summary",      // REQUIRED
  "description": "What and why, 1-3 sentences",
  "feature_id": "feat-xyz",                 // OPTIONAL - feature tree node the card belongs to
  "lane": "proposed",                       // OPTIONAL - defaults to "proposed"
  "priority": "P2"                          // OPTIONAL - defaults to "P2"
}
` + "```" + `

## Rules

1. **Title is required.** Keep it under ~80 characters, imperative mood
   ("Add offline sync", not "Offline sync was added").
2. **Lanes** are: proposed, queued, development, review, blocked, done.
   New proposals start in "proposed" unless the operator says otherwise.
   The legacy aliases "todo" and "in_progress" are accepted and mapped
   to "proposed" and "development".
3. **Priorities** are P0 (critical) through P3 (someday). When unsure,
   omit the field and let the default apply.
4. **feature_id** should reference an existing feature tree node id from
   get_project_view. A dangling id is tolerated but renders unlinked.
5. **Lane transitions** append to the card history; move cards with the
   move_card tool rather than re-proposing them.

## Example

` + "```" + `json
{
  "title": "Add route map to trip detail screen",
  "description": "Render the recorded GPS trace on a map tile layer.",
  "feature_id": "feat-m3k2v81x-4af2",
  "priority": "P1"
}
` + "```" + `
`
