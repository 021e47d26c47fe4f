package invoke

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/extframework/extlaunch/internal/loader"
)

func testLoader(t *testing.T, files map[string]string) *loader.VirtualLoader {
	t.Helper()
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	u, err := loader.NewFSUnit("test", fsys)
	if err != nil {
		t.Fatal(err)
	}
	return loader.Assemble(loader.Build([]loader.SourceUnit{u}), nil)
}

func run(t *testing.T, files map[string]string, entry string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	inv := &Invoker{
		Loader:  testLoader(t, files),
		Dir:     t.TempDir(),
		Env:     []string{},
		Version: "1.20.1",
		Stdout:  &out,
		Stderr:  &out,
	}
	err := inv.Run(context.Background(), entry, args)
	return out.String(), err
}

func TestRunPositionalArgs(t *testing.T) {
	out, err := run(t, map[string]string{
		"com/example/Main.sh": `echo "hello $1 $#"`,
	}, "com.example.Main", "world", "-v")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "hello world 2\n" {
		t.Errorf("output = %q, want %q", out, "hello world 2\n")
	}
}

func TestRunVersionEnv(t *testing.T) {
	out, err := run(t, map[string]string{
		"com/example/Main.sh": `echo "$EXTFRAMEWORK_VERSION"`,
	}, "com.example.Main")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "1.20.1\n" {
		t.Errorf("output = %q, want %q", out, "1.20.1\n")
	}
}

func TestRunExitStatus(t *testing.T) {
	_, err := run(t, map[string]string{
		"com/example/Main.sh": "exit 3",
	}, "com.example.Main")

	var exit *ExitError
	if !errors.As(err, &exit) {
		t.Fatalf("error = %v, want *ExitError", err)
	}
	if exit.Code != 3 || exit.Entry != "com.example.Main" {
		t.Errorf("ExitError = %+v, want code 3 for com.example.Main", exit)
	}
}

func TestRunServesResources(t *testing.T) {
	out, err := run(t, map[string]string{
		"com/example/Main.sh": ". com/example/lib.sh\ngreet\nread -r line < config/greeting.txt\necho \"$line\"",
		"com/example/lib.sh":  `greet() { echo "from lib"; }`,
		"config/greeting.txt": "hi there\n",
	}, "com.example.Main")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if want := "from lib\nhi there\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRunNestedUnits(t *testing.T) {
	out, err := run(t, map[string]string{
		"com/example/Main.sh": "export SHARED=yes\ncom.example.Tool a b\ncom.example.Fail || echo \"failed $?\"",
		"com/example/Tool.sh": `echo "tool $1 $2 $SHARED"`,
		"com/example/Fail.sh": "exit 4",
	}, "com.example.Main")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if want := "tool a b yes\nfailed 4\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRunRecursionLimit(t *testing.T) {
	_, err := run(t, map[string]string{
		"com/example/Loop.sh": "com.example.Loop",
	}, "com.example.Loop")
	if err == nil {
		t.Fatal("expected error for unbounded recursion")
	}
}

func TestRunMissingEntry(t *testing.T) {
	_, err := run(t, map[string]string{"com/example/Main.sh": "true"}, "com.example.Missing")
	var nf *loader.NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("error = %v, want *loader.NotFoundError", err)
	}
}

func TestRunParseError(t *testing.T) {
	_, err := run(t, map[string]string{"com/example/Main.sh": "if then fi ("}, "com.example.Main")
	if err == nil {
		t.Fatal("expected parse error")
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		t.Errorf("parse error reported as exit status: %v", err)
	}
}

func TestLooksLikeUnit(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"com.example.Tool", true},
		{"echo", false},
		{"./run.sh", false},
		{"dir/com.example", false},
		{".hidden", false},
		{"trailing.", false},
	}
	for _, tt := range tests {
		if got := looksLikeUnit(tt.word); got != tt.want {
			t.Errorf("looksLikeUnit(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}
