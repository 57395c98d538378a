// Package watch rebuilds libraries when their files change on disk.
//
// A Watcher follows a directory tree with fsnotify, keeps only events for
// library file extensions, and delivers them in debounced batches. New
// subdirectories are picked up as they appear. AffectedLibraries turns a
// batch into the set of library folders to rebuild.
package watch
