// Package lua loads hook scripts written in Lua as plugins.
//
// A hook script is a plain Lua file. It may validate its own options by
// defining load_config, and react to application events with on_<event>
// handlers:
//
//	function load_config(options, source_path)
//	  local errors, warnings = {}, {}
//	  if options.depth ~= nil and type(options.depth) ~= "number" then
//	    table.insert(errors, {"depth", "Expected a number"})
//	  end
//	  return errors, warnings
//	end
//
//	function on_startup()
//	end
//
// Scripts run with the base, table, string and math libraries only.
package lua
