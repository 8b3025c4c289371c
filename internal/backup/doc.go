// Package backup serializes the tag store for transfer and restore.
//
// A backup is a JSON array of tag records. Export writes the store verbatim;
// import validates the whole document up front and then feeds it to the
// store's merge, which updates existing file names and inserts the rest.
package backup
