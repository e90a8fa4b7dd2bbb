package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sandeepkv93/todolist/internal/derive"
)

const listing = `[
	{"userId": 1, "id": 1, "title": "delectus aut autem", "completed": false},
	{"userId": 1, "id": 2, "title": "quis  ut nam", "completed": true},
	{"userId": 1, "id": "oops", "title": "skipped", "completed": false}
]`

func remoteServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/todos" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(listing))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd(&stdout, &stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())
	return stdout.String(), stderr.String(), err
}

func TestListPrintsDerivedView(t *testing.T) {
	srv := remoteServer(t)
	t.Setenv("TODOLIST_REMOTE_BASE_URL", srv.URL)

	out, _, err := run(t, "list", "--sort", "id")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"total: 2 | completed: 1", "sort: id", "delectus aut autem", "quis ut nam"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Index(out, "delectus") > strings.Index(out, "quis ut nam") {
		t.Fatalf("expected id order:\n%s", out)
	}
}

func TestListJSONWithFilter(t *testing.T) {
	srv := remoteServer(t)
	t.Setenv("TODOLIST_REMOTE_BASE_URL", srv.URL)

	out, _, err := run(t, "list", "--filter", "done", "--json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var view derive.View
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(view.Items) != 1 || view.Items[0].ID != 2 || view.Total != 2 || view.Completed != 1 {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func TestListRejectsBadFlags(t *testing.T) {
	if _, _, err := run(t, "list", "--filter", "someday"); err == nil {
		t.Fatal("expected invalid filter error")
	}
}

func TestListReportsFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	t.Setenv("TODOLIST_REMOTE_BASE_URL", srv.URL)

	_, _, err := run(t, "list")
	if err == nil || err.Error() != "HTTP 500" {
		t.Fatalf("expected HTTP 500, got %v", err)
	}
}

func TestMirrorThenListFromSQLite(t *testing.T) {
	srv := remoteServer(t)
	t.Setenv("TODOLIST_REMOTE_BASE_URL", srv.URL)
	db := filepath.Join(t.TempDir(), "seed.db")

	out, _, err := run(t, "mirror", "--db", db)
	if err != nil {
		t.Fatalf("mirror: %v", err)
	}
	if !strings.Contains(out, "mirrored 2 todos") || !strings.Contains(out, "skipped 1") {
		t.Fatalf("unexpected mirror output: %q", out)
	}

	// The remote is gone; the mirror alone must seed the list.
	srv.Close()
	t.Setenv("TODOLIST_SOURCE", "sqlite:"+db)
	out, _, err = run(t, "list", "--filter", "active")
	if err != nil {
		t.Fatalf("list from mirror: %v", err)
	}
	if !strings.Contains(out, "delectus aut autem") || strings.Contains(out, "quis ut nam") {
		t.Fatalf("unexpected mirror listing:\n%s", out)
	}
}

func TestMirrorRequiresDB(t *testing.T) {
	if _, _, err := run(t, "mirror"); err == nil {
		t.Fatal("expected missing --db error")
	}
}

func TestConfigFlagCreatesFile(t *testing.T) {
	srv := remoteServer(t)
	t.Setenv("TODOLIST_REMOTE_BASE_URL", srv.URL)
	path := filepath.Join(t.TempDir(), "todolist.toml")

	if _, _, err := run(t, "--config", path, "list"); err != nil {
		t.Fatalf("list with config: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file created: %v", err)
	}
}

func TestMirrorCurationCommands(t *testing.T) {
	srv := remoteServer(t)
	t.Setenv("TODOLIST_REMOTE_BASE_URL", srv.URL)
	db := filepath.Join(t.TempDir(), "seed.db")

	_, logs, err := run(t, "mirror", "--db", db)
	if err != nil {
		t.Fatalf("mirror: %v", err)
	}
	if !strings.Contains(logs, "command=mirror") {
		t.Fatalf("expected command-tagged log lines, got:\n%s", logs)
	}

	out, _, err := run(t, "mirror", "ls", "--db", db, "--state", "done")
	if err != nil {
		t.Fatalf("ls done: %v", err)
	}
	if !strings.Contains(out, "quis  ut nam") || strings.Contains(out, "delectus") {
		t.Fatalf("unexpected done listing:\n%s", out)
	}
	out, _, err = run(t, "mirror", "ls", "--db", db, "--limit", "1")
	if err != nil {
		t.Fatalf("ls limit: %v", err)
	}
	if strings.Count(out, "\n") != 1 || !strings.Contains(out, "delectus") {
		t.Fatalf("expected only the first row:\n%s", out)
	}
	out, _, err = run(t, "mirror", "ls", "--db", db, "--offset", "1")
	if err != nil {
		t.Fatalf("ls offset: %v", err)
	}
	if strings.Contains(out, "delectus") || !strings.Contains(out, "quis") {
		t.Fatalf("expected the first row skipped:\n%s", out)
	}

	out, _, err = run(t, "mirror", "add", "--db", db, "hand", "written")
	if err != nil || !strings.Contains(out, "added #3") {
		t.Fatalf("add: %q err=%v", out, err)
	}
	out, _, err = run(t, "mirror", "edit", "--db", db, "3", "--toggle", "--title", "hand  edited")
	if err != nil || !strings.Contains(out, "[x]") || !strings.Contains(out, "hand edited") {
		t.Fatalf("edit: %q err=%v", out, err)
	}
	if _, _, err := run(t, "mirror", "edit", "--db", db, "3"); err == nil {
		t.Fatal("edit without changes should fail")
	}
	out, _, err = run(t, "mirror", "show", "--db", db, "3")
	if err != nil || !strings.Contains(out, "hand edited") {
		t.Fatalf("show: %q err=%v", out, err)
	}

	if out, _, err = run(t, "mirror", "rm", "--db", db, "1"); err != nil || !strings.Contains(out, "deleted #1") {
		t.Fatalf("rm: %q err=%v", out, err)
	}
	if _, _, err := run(t, "mirror", "show", "--db", db, "1"); err == nil || !strings.Contains(err.Error(), "no mirrored todo #1") {
		t.Fatalf("expected not found after rm, got %v", err)
	}
	if _, _, err := run(t, "mirror", "rm", "--db", db, "x"); err == nil {
		t.Fatal("expected invalid id error")
	}

	if _, _, err := run(t, "mirror", "reset", "--db", db); err != nil {
		t.Fatalf("reset: %v", err)
	}
	out, _, err = run(t, "mirror", "ls", "--db", db)
	if err != nil || !strings.Contains(out, "mirror is empty") {
		t.Fatalf("expected empty mirror after reset: %q err=%v", out, err)
	}
}
