// Package runtime provides the execution context for stacktrain commands.
//
// It encapsulates shared dependencies needed by actions: the resolved
// configuration, the logger, the commit graph, the pull request host and
// the local repository. Outside demo mode it first verifies that the
// external tools and credentials those dependencies need are present.
package runtime
