package orchestration

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	apperrors "github.com/agbru/bigrsa/internal/errors"
)

// Task is one operation invocation: an operation name and its raw operands.
type Task struct {
	// Line is the 1-based line of the batch file, or 0 for command-line tasks.
	Line int
	// Op is the lowercase operation name.
	Op string
	// Args are the operands as written, parsed later in the input radix.
	Args []string
}

// String renders the task the way it is written in a batch file.
func (t Task) String() string {
	if len(t.Args) == 0 {
		return t.Op
	}
	return t.Op + " " + strings.Join(t.Args, " ")
}

// NewTask builds a command-line task.
func NewTask(op string, args ...string) Task {
	return Task{Op: strings.ToLower(op), Args: args}
}

// ParseTasks reads one task per line from r. Blank lines and lines starting
// with '#' are skipped; trailing "# ..." comments are stripped.
func ParseTasks(r io.Reader) ([]Task, error) {
	var tasks []Task
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		tasks = append(tasks, Task{Line: line, Op: strings.ToLower(fields[0]), Args: fields[1:]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading tasks at line %d: %w", line+1, err)
	}
	return tasks, nil
}

// StdinPath is the batch path that selects the standard input.
const StdinPath = "-"

// LoadTasks parses the batch file at path, or stdin when path is StdinPath.
// A missing or unreadable file is a configuration error.
func LoadTasks(path string, stdin io.Reader) ([]Task, error) {
	r := stdin
	if path == StdinPath {
		path = "<stdin>"
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, apperrors.NewConfigError("cannot open batch file: %v", err)
		}
		defer f.Close()
		r = f
	}

	tasks, err := ParseTasks(r)
	if err != nil {
		return nil, apperrors.WrapError(err, "batch file %s", path)
	}
	if len(tasks) == 0 {
		return nil, apperrors.NewConfigError("batch file %s contains no tasks", path)
	}
	return tasks, nil
}
