package mcpserver

// ContentFormatContract describes the canonical note content format that
// LLM consumers should follow when creating or reading notes.
const ContentFormatContract = `# Note Content Contract

Every note carries a type that fixes how its content field is serialized.

## Types

- **text** – free-form rich markup. Created empty.
- **task** – rich markup seeded with a task list block.
- **checklist** – a JSON array of checklist rows. Created as ` + "`[]`" + `.

## Rich markup (text and task notes)

` + "```" + `html
<p>Plain paragraphs of HTML-like markup.</p>
<p>Reference another note: <span data-backlink>Exact Title</span></p>
` + "```" + `

Rules:

1. **References** use ` + "`" + `<span data-backlink>Title</span>` + "`" + `. The inner text is
   the target note's title; resolution trims whitespace and ignores case.
2. Typing ` + "`" + `[[Title]]` + "`" + ` in the editor converts to the span form when the
   closing brackets are typed; stored content should use the span form.
3. A reference whose title matches no note is kept as-is. Following it
   shows a notice; it never creates the missing note.
4. Task notes start from a task list block
   (` + "`" + `<ul data-type="taskList">...</ul>` + "`" + `); keep that structure when
   editing them.

## Checklist JSON (checklist notes)

` + "```" + `json
[
  {"id": "uuid", "text": "buy milk", "checked": false},
  {"id": "uuid", "text": "call back", "checked": true}
]
` + "```" + `

Rules:

1. Content is always a JSON array, never null. An empty list is ` + "`[]`" + `.
2. Row ids are opaque strings, unique within the note.
3. Row text inside a checklist is plain text; ` + "`[[...]]`" + ` inside it is
   never treated as a reference.
4. Checklist content is edited through row operations, not wholesale
   markup replacement.

## Titles

- The title is the backlink target. Renaming a note does not rewrite
  references pointing at the old title.
- Search matches titles, subtitles, and content.
`
