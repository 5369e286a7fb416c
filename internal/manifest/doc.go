// Package manifest reads and updates the poetry build manifest
// (pyproject.toml) of the workspace and of individual packages.
//
// The workspace manifest is decoded into a generic tree and only the
// sections omnirepo owns are touched, so every other table survives a
// load/modify/save cycle structurally unchanged. Comments and key order of
// the original file are not preserved.
package manifest
