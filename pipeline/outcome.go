package pipeline

// Kind tags the result of one evaluation.
type Kind int

const (
	// CompileFailure means the compiler rejected the candidate program.
	CompileFailure Kind = iota + 1
	// RuntimeResult means the program compiled and its binary was run.
	RuntimeResult
)

func (k Kind) String() string {
	switch k {
	case CompileFailure:
		return "compile_failure"
	case RuntimeResult:
		return "runtime_result"
	default:
		return "unknown"
	}
}

// Outcome is the result of Evaluate. Compile is always populated; Run is
// populated only when Kind is RuntimeResult.
type Outcome struct {
	Kind    Kind
	Compile Process
	Run     Process
}

// Compiled reports whether the candidate program compiled.
func (o Outcome) Compiled() bool {
	return o.Kind == RuntimeResult
}
