/*
Package migrate runs the migration rule table against a project tree.

	+-------------+
	|   Migrate   |
	| (Orchestr.) |
	+------+------+
	       |
	+------+------+------+
	|      |      |      |
	+---+  +---+  +---+  +---+
	|Eng|  |Pmt|  |Rpt|  |Vcs|
	+---+  +---+  +---+  +---+

🎯 Purpose:
- Walks the rule table in its canonical order
- Runs each step through scan → confirm → apply → commit
- Keeps per-step failures local so the run always finishes

🔄 Flow:
1. Enforces the clean-working-tree policy (stash or refuse)
2. Scans the tree with the engine, one rule at a time
3. Shows the match list and a diff preview, then asks the confirmer
4. Applies approved change sets and commits them with the rule's message

🤝 Interfaces:
- engine: scanning and atomic write-back
- prompt.Confirmer: step approval, injected, never global
- report.Printer: operator-facing output
- vcs.Git: opaque version-control boundary, nil when disabled

📝 Design Philosophy:
The operator is deliberately sequential: one rule's file I/O completes
before the next rule starts, and a declined or failed step is recorded
in the summary instead of stopping the run. The only run-level errors
are the ones where continuing would be unsafe, an unreadable root or a
dirty tree the operator refused to handle.
*/
package migrate
