// Package profile loads YAML mapping profiles.
//
// A profile sets the default behavior flags of a mapper and lists, per type
// pair, target fields that must never be written.
//
//	version: "1"
//	defaults:
//	  copy_null_values: false        # copy-into leaves targets alone when the source is nil
//	  copy_nullable_properties: true # *T <-> T fields are coerced
//	  ignore_type_conflicts: false
//	mappings:
//	  - source: store.User
//	    target: warehouse.Client
//	    ignore: [PasswordHash, Notes]
//	  - source: "*"
//	    target: warehouse.Client
//	    ignore: Internal
//
// Type names are matched against reflect.Type.String() ("store.User") or the
// fully qualified "import/path.Name". "*" matches any type.
package profile
