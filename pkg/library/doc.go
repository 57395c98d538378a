// Package library assembles a Library from a library folder.
//
// A folder holds exactly one function declaration file (*.fun) in its root,
// any number of type (*.typ) and variable (*.var) declaration files at any
// depth, and an optional XML descriptor (*.lby). Loader discovers the files,
// decodes and parses them, merges the declarations in sorted path order,
// applies the descriptor and freezes the result.
//
// Parse problems never abort a load. They are collected as warnings in the
// Report. Only a missing or ambiguous function file, or an unreadable
// folder, fails Load.
package library
