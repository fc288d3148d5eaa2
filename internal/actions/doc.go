// Package actions provides the business logic behind each CLI command.
//
// Each action corresponds to a stacktrain command (update, cleanup, wait,
// config) and orchestrates the train core, the commit graph and the
// pull request host.
//
// Key patterns:
//   - Actions accept runtime.Context which provides Graph, Host, Repo and Splog
//   - Actions never read configuration themselves; they use ctx.Config
//   - Actions handle user interaction through the tui package
package actions
