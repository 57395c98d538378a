// libscribe reads B&R automation library folders and turns their
// declaration files into a structured library model.
//
// Usage:
//
//	# Print the model of a library folder
//	libscribe build Libraries/AxisLib --format json
//
//	# Validate library folders
//	libscribe lint Libraries/AxisLib Libraries/BaseLib --strict
//
//	# Link declaration names in a type expression or text
//	libscribe resolve Libraries/AxisLib --type "ARRAY[0..MAX_AXES] OF AxisCfg_typ"
//
//	# Index all libraries below a root into the symbol catalog
//	libscribe index Libraries/
//
//	# Rebuild libraries as their files change
//	libscribe watch Libraries/
//
//	# Clone or update the library repository
//	libscribe fetch --watch
package main

func main() {
	Execute()
}
