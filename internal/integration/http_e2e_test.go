//go:build integration || !unit

package integration

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"hostel_pms/internal/adapters/genai"
	httpserver "hostel_pms/internal/adapters/http_server"
	redisad "hostel_pms/internal/adapters/redis"
	"hostel_pms/internal/adapters/tokens"
	"hostel_pms/internal/app"
	"hostel_pms/internal/domain"
	"hostel_pms/internal/storage/memory"
	mysqlrepo "hostel_pms/internal/storage/mysql"
)

// ---------- helpers ----------

func migrationsDir() string {
	if d := os.Getenv("MIGRATIONS_DIR"); d != "" {
		return d
	}
	return filepath.Join("..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir()
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir %s: %v", dir, err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		b, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(b)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("dockertest: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker not reachable: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env:        []string{"MYSQL_ROOT_PASSWORD=root", "MYSQL_DATABASE=hostel"},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/hostel?parseTime=true&multiStatements=true&loc=UTC", resource.GetPort("3306/tcp"))
	pool.MaxWait = 2 * time.Minute

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func post(t *testing.T, url, token string, body any) *http.Response {
	t.Helper()
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return res
}

// ---------- the test ----------

// Full stack: Redis-backed sessions, MySQL invocation audit, mock AI.
func TestHTTP_EndToEnd_LoginAndAudit(t *testing.T) {
	db := startMySQL(t)
	applyMigrations(t, db)

	mr := miniredis.RunT(t)
	sessions := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = sessions.Close() })

	st := memory.NewSeeded()
	audit := mysqlrepo.New(db)
	srv := httpserver.New(httpserver.Options{})
	srv.MountHandlers(&httpserver.Handlers{
		Store:  st,
		Auth:   app.NewAuthService(st, sessions, tokens.NewService("e2e-secret", time.Hour), time.Hour),
		Desk:   app.NewFrontDesk(st),
		Office: app.NewBackOffice(st),
		AI:     app.NewAssistant(st, genai.Mock{}, audit),
	})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	// login lands a session in redis
	res := post(t, ts.URL+"/auth/login", "", map[string]string{"email": "camila.c@hostel.com", "pass": "admin"})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("login status %d", res.StatusCode)
	}
	var login struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&login); err != nil || login.Token == "" {
		t.Fatalf("decode login: %v", err)
	}
	res.Body.Close()
	if n := len(mr.Keys()); n != 1 {
		t.Fatalf("expected one session key in redis, got %d", n)
	}

	// two assistant calls are audited in mysql
	for _, op := range []string{"daily-briefing", "breakeven"} {
		res := post(t, ts.URL+"/ai/"+op, login.Token, map[string]any{})
		if res.StatusCode != http.StatusOK {
			t.Fatalf("%s status %d", op, res.StatusCode)
		}
		res.Body.Close()
	}

	res, err := http.Get(ts.URL + "/ai/invocations?limit=10")
	if err != nil {
		t.Fatalf("GET invocations: %v", err)
	}
	defer res.Body.Close()
	var invs []domain.Invocation
	if err := json.NewDecoder(res.Body).Decode(&invs); err != nil {
		t.Fatalf("decode invocations: %v", err)
	}
	if len(invs) != 2 {
		t.Fatalf("expected 2 audited calls, got %+v", invs)
	}
	for _, inv := range invs {
		if inv.Mode != "mock" || !inv.OK {
			t.Fatalf("unexpected invocation %+v", inv)
		}
	}

	// logout removes the session
	res = post(t, ts.URL+"/auth/logout", login.Token, nil)
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("logout status %d", res.StatusCode)
	}
	if n := len(mr.Keys()); n != 0 {
		t.Fatalf("expected redis to be empty after logout, got %d keys", n)
	}
}
