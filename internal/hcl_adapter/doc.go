// Package hcl_adapter loads assembly definitions written in HCL and
// translates them into the format-agnostic config.Model.
//
// A definition file may contain these top-level items, and group blocks may
// nest all of them:
//
//	config_dir = "config"
//
//	group "handlers" {
//	  element "fizz" {
//	    factory = "fizzbuzz.divisor"
//	    args    = [3, "Fizz!"]
//	  }
//	  value "greeting" { value = upper("hi") }
//	  alias "first" { target = "handlers.fizz" }
//	  overlay "reference" {
//	    target    = ""
//	    transform = "fizzbuzz.call_log"
//	  }
//	}
//
//	element "dispatcher" {
//	  factory = "fizzbuzz.dispatcher"
//	  args    = [handlers, output]
//	}
//
// The functions upper, lower, format, concat, jsonencode and env are
// available. A variable in the args of an element, or in the value of a
// value block, names another element: such expressions are evaluated when
// the element is built, with each name resolved from the element's group
// outward. Overlay args are evaluated at load time and cannot refer to
// elements. An overlay target starting with "/" is an absolute path.
package hcl_adapter
