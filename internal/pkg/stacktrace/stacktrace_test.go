package stacktrace

import (
	"reflect"
	"testing"
)

func TestInternalPaths(t *testing.T) {
	stack := []byte(`goroutine 7 [running]:
runtime/debug.Stack()
	/usr/local/go/src/runtime/debug/stack.go:26 +0x5e
github.com/shandysiswandi/gobudget/internal/pkg/router.middlewareRecoverer.func1.1()
	/src/internal/pkg/router/middleware_recover.go:29 +0x6c
panic({0x1029c40?, 0x1234?})
	/usr/local/go/src/runtime/panic.go:785 +0x132
github.com/shandysiswandi/gobudget/internal/budget/usecase.(*Usecase).Summary(...)
	/src/internal/budget/usecase/report.go:20
`)

	got := InternalPaths(stack)

	want := []string{
		"internal/pkg/router/middleware_recover.go:29",
		"internal/budget/usecase/report.go:20",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("InternalPaths() = %q, want %q", got, want)
	}
}
