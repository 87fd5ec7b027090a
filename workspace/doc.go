// Package workspace maps the workspace roles a task declares to the
// shared workspaces a pipeline owns. Binding is pure name resolution:
// storage mechanics and any concurrent-access discipline belong to the
// engine executing the tasks.
package workspace
