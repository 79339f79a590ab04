// Package changelog turns a version graph into a changelog document and
// renders it as Markdown, YAML or coloured terminal output.
//
// Build flattens a release.Graph into a Changelog: one Version per version
// tag, newest first, optionally headed by the unreleased commits. Each
// Version holds one Section per titled commit type and the breaking-change
// notes of the release. Rendering never touches the repository.
package changelog
