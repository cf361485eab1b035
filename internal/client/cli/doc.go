// Package cli implements the interactive taskkeeper client: a small REPL
// that registers and logs in users and edits tasks and services on the
// server.
//
// Commands
//
//	help                     show available commands
//	register                 create an account
//	login                    check credentials
//	logout                   forget the current user
//	list   task|service      list records
//	show   task|service      show one record (asks for the id)
//	add    task|service      create a record
//	update task|service      replace a record
//	delete task|service      delete a record
//	health                   server status and record counts
//	exit | quit              leave the program
package cli
