package constants

// FieldTasks is the JSON object holding the compiler argument fields.
const FieldTasks = "tasks"

// ArgField pairs a list-valued argument key with its flattened string key.
type ArgField struct {
	Key       string
	Flattened string
}

// ArgFields lists the argument keys copied by merge, in processing order.
var ArgFields = []ArgField{
	{Key: "C_ARGS_BASE", Flattened: "c_args_base"},
	{Key: "C_ARGS", Flattened: "c_args"},
	{Key: "CPP_ARGS_BASE", Flattened: "cpp_args_base"},
	{Key: "CPP_ARGS", Flattened: "cpp_args"},
}
