// Package yaml_adapter loads assembly definitions written in YAML and
// translates them into the format-agnostic config.Model.
//
// The document mirrors the HCL format. Mappings keep their declaration
// order:
//
//	config_dir: config
//	values:
//	  greeting: hi
//	groups:
//	  handlers:
//	    elements:
//	      fizz:
//	        factory: fizzbuzz.divisor
//	        args: [3, "Fizz!"]
//	    aliases:
//	      first: handlers.fizz
//	    overlays:
//	      - kind: reference
//	        transform: fizzbuzz.call_log
package yaml_adapter
