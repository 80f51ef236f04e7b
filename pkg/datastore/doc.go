// Package datastore is the persistence gateway for templates and the
// files users import and export.
//
// Templates live as one JSON document per template, <id>.json, in the
// templates directory. Thumbnails sit next to them under the thumbnails
// directory as <id>.png. Files outside the data directory (exports and
// screenshots) are written through a FileWriter, which in production is a
// synthfs pipeline.
package datastore
