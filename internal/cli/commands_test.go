package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testToken(t *testing.T, id, level int) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":              id,
		"permissionLevel": level,
		"exp":             time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test"))
	require.NoError(t, err)
	return token
}

type cliFixture struct {
	t         *testing.T
	config    string
	tokenFile string

	mu       sync.Mutex
	lastReq  *http.Request
	lastBody string
}

// newCLIFixture serves router under /api and writes a config pointing at it.
func newCLIFixture(t *testing.T, routes func(r chi.Router)) *cliFixture {
	t.Helper()
	clearConfigEnv(t)

	f := &cliFixture{t: t}
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			data, _ := io.ReadAll(req.Body)
			req.Body = io.NopCloser(bytes.NewReader(data))
			f.mu.Lock()
			f.lastReq = req.Clone(context.Background())
			f.lastBody = string(data)
			f.mu.Unlock()
			next.ServeHTTP(w, req)
		})
	})
	r.Route("/api", routes)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	f.config = filepath.Join(dir, "config.yaml")
	f.tokenFile = filepath.Join(dir, "credentials.yaml")

	_, _, code := f.run("config", "set-server", srv.URL+"/api", "--credentials-path", f.tokenFile)
	require.Equal(t, 0, code)
	return f
}

func (f *cliFixture) run(args ...string) (string, string, int) {
	var stdout, stderr bytes.Buffer
	args = append(args, "--config", f.config)
	code := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func (f *cliFixture) login(level int) {
	f.t.Helper()
	token := testToken(f.t, 1, level)
	require.NoError(f.t, os.WriteFile(f.tokenFile, []byte("token: "+token+"\n"), 0o600))
}

func (f *cliFixture) request() (*http.Request, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastReq, f.lastBody
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func decodeEnvelope(t *testing.T, out string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &m), out)
	return m
}

func TestVersionNeedsNoConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"version", "-j", "--config", filepath.Join(t.TempDir(), "none.yaml")}, &stdout, &stderr)
	require.Equal(t, 0, code)
	m := decodeEnvelope(t, stdout.String())
	assert.Equal(t, getCLIVersion(), m["version"])
}

func TestMissingConfig(t *testing.T) {
	clearConfigEnv(t)
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"categories", "--config", filepath.Join(t.TempDir(), "none.yaml")}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "config set-server")
}

func TestConfigShow(t *testing.T) {
	f := newCLIFixture(t, func(r chi.Router) {})
	out, _, code := f.run("config", "show", "-j")
	require.Equal(t, 0, code)
	m := decodeEnvelope(t, out)
	assert.Equal(t, f.config, m["config_file"])
	assert.Equal(t, "30s", m["timeout"])
}

func TestLoginWhoamiLogout(t *testing.T) {
	token := testToken(t, 12, 1)
	f := newCLIFixture(t, func(r chi.Router) {
		r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"accessToken":"`+token+`","atExpireDate":"2030-01-01T00:00:00.000Z","memberId":12}`)
		})
	})

	out, _, code := f.run("login", "--email", "m@example.com", "--password", "pw", "-j")
	require.Equal(t, 0, code, out)
	m := decodeEnvelope(t, out)
	assert.EqualValues(t, 12, m["memberId"])
	assert.Equal(t, "manager", m["permissionLevel"])

	_, body := f.request()
	assert.JSONEq(t, `{"email":"m@example.com","password":"pw"}`, body)

	out, _, code = f.run("whoami")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Member:     12")
	assert.Contains(t, out, "Permission: Manager")

	_, _, code = f.run("logout")
	require.Equal(t, 0, code)
	_, err := os.Stat(f.tokenFile)
	assert.True(t, os.IsNotExist(err))

	_, stderr, code := f.run("whoami")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "not logged in")
}

func TestLoginPasswordFromEnv(t *testing.T) {
	token := testToken(t, 3, 0)
	f := newCLIFixture(t, func(r chi.Router) {
		r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"accessToken":"`+token+`","atExpireDate":"2030-01-01T00:00:00.000Z","memberId":3}`)
		})
	})
	t.Setenv(EnvPassword, "from-env")

	_, _, code := f.run("login", "--email", "u@example.com")
	require.Equal(t, 0, code)
	_, body := f.request()
	assert.JSONEq(t, `{"email":"u@example.com","password":"from-env"}`, body)

	t.Setenv(EnvPassword, "")
	_, stderr, code := f.run("login", "--email", "u@example.com")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "no password provided")
}

func TestListPrintsEnvelopeAndYAML(t *testing.T) {
	f := newCLIFixture(t, func(r chi.Router) {
		r.Get("/categories", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `[{"id":1,"name":"Strategy"},{"id":2,"name":"Party"}]`)
		})
	})

	out, _, code := f.run("categories", "-j")
	require.Equal(t, 0, code)
	m := decodeEnvelope(t, out)
	assert.EqualValues(t, 1, m["result"])
	assert.Len(t, m["value"], 2)

	out, _, code = f.run("categories")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "name: Strategy")

	out, _, code = f.run("categories", "-q", "1.name")
	require.Equal(t, 0, code)
	assert.Equal(t, "Party\n", out)

	_, stderr, code := f.run("categories", "-q", "7.name")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "matched nothing")
}

func TestSessionExpiredMessage(t *testing.T) {
	f := newCLIFixture(t, func(r chi.Router) {
		r.Get("/sellers", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, `{"message":"jwt expired"}`)
		})
	})
	f.login(2)

	out, _, code := f.run("sellers", "list", "-j")
	assert.Equal(t, 1, code)
	m := decodeEnvelope(t, out)
	assert.Equal(t, "session expired, please login again", m["error"])

	_, err := os.Stat(f.tokenFile)
	assert.True(t, os.IsNotExist(err), "token file should be removed")
}

func TestPermissionCheckedLocally(t *testing.T) {
	var hits atomic.Int32
	f := newCLIFixture(t, func(r chi.Router) {
		r.Get("/members", func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			writeJSON(w, http.StatusOK, `[]`)
		})
	})

	_, stderr, code := f.run("members", "list")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "not logged in")

	f.login(1)
	_, stderr, code = f.run("members", "list")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "insufficient permission")
	assert.Zero(t, hits.Load())

	f.login(2)
	_, _, code = f.run("members", "list")
	assert.Equal(t, 0, code)
	assert.EqualValues(t, 1, hits.Load())
}

func TestCreateSellersFromFileAndSets(t *testing.T) {
	var bodies []string
	var mu sync.Mutex
	f := newCLIFixture(t, func(r chi.Router) {
		r.Post("/sellers", func(w http.ResponseWriter, r *http.Request) {
			data, _ := io.ReadAll(r.Body)
			mu.Lock()
			bodies = append(bodies, string(data))
			mu.Unlock()
			w.WriteHeader(http.StatusCreated)
		})
	})
	f.login(1)

	file := writeFile(t, "sellers.yaml", "firstName: Ada\nlastName: Lovelace\nemail: ada@example.com\nphone: \"0611\"\n---\nfirstName: Alan\nlastName: Turing\nemail: alan@example.com\nphone: \"0622\"\n")
	out, _, code := f.run("sellers", "create", "-f", file, "--set", "lastName=Byron")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "2 sellers created")

	require.Len(t, bodies, 2)
	assert.JSONEq(t, `{"firstName":"Ada","lastName":"Byron","email":"ada@example.com","phone":"0611"}`, bodies[0])
	assert.JSONEq(t, `{"firstName":"Alan","lastName":"Byron","email":"alan@example.com","phone":"0622"}`, bodies[1])
}

func TestMemberCreatePermissionFlag(t *testing.T) {
	f := newCLIFixture(t, func(r chi.Router) {
		r.Post("/members", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})
	f.login(2)

	_, _, code := f.run("members", "create", "--set", "email=bob@example.com", "--set", "firstName=Bob",
		"--set", "lastName=Ross", "--permission", "manager", "--password", "s3cret")
	require.Equal(t, 0, code)
	_, body := f.request()
	assert.JSONEq(t, `{"email":"bob@example.com","firstName":"Bob","lastName":"Ross","permissionLevel":1,"password":"s3cret"}`, body)

	_, stderr, code := f.run("members", "create", "--set", "email=x@y.z", "--permission", "owner")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown permission level")
}

func TestGamesForSaleFilter(t *testing.T) {
	f := newCLIFixture(t, func(r chi.Router) {
		r.Get("/games/for-sale", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `[]`)
		})
	})

	_, _, code := f.run("games", "for-sale", "--category", "Party", "--players", "6")
	require.Equal(t, 0, code)
	req, body := f.request()
	assert.Empty(t, body)
	assert.Equal(t, "Party", req.URL.Query().Get("categoryName"))
	assert.Equal(t, "6", req.URL.Query().Get("playerNumber"))

	_, stderr, code := f.run("games", "for-sale", "--min-price", "40", "--max-price", "10")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "above --max-price")
}

func TestPhysicalGameStatus(t *testing.T) {
	f := newCLIFixture(t, func(r chi.Router) {
		r.Put("/physical-games", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	})
	f.login(1)

	out, _, code := f.run("physical-games", "set-status", "for_sale", "4", "5")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "2 physical games updated")
	_, body := f.request()
	assert.JSONEq(t, `{"ids":[4,5],"status":"for_sale"}`, body)

	_, stderr, code := f.run("physical-games", "set-status", "lost", "4")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown status")
}

func TestServerErrorMessage(t *testing.T) {
	f := newCLIFixture(t, func(r chi.Router) {
		r.Get("/sessions/current", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, `{"message":"no session in progress"}`)
		})
	})

	_, stderr, code := f.run("sessions", "current")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "404")
	assert.Contains(t, stderr, "no session in progress")
}

func TestRetriesOnNetworkFailure(t *testing.T) {
	var hits atomic.Int32
	f := newCLIFixture(t, func(r chi.Router) {
		r.Get("/means-payment", func(w http.ResponseWriter, r *http.Request) {
			if hits.Add(1) < 3 {
				hj, ok := w.(http.Hijacker)
				require.True(t, ok)
				conn, _, err := hj.Hijack()
				require.NoError(t, err)
				conn.Close()
				return
			}
			// No idle connection may survive into the next run.
			w.Header().Set("Connection", "close")
			writeJSON(w, http.StatusOK, `[{"id":1,"label":"cash"}]`)
		})
	})

	out, _, code := f.run("payments", "--retries", "2", "-j")
	require.Equal(t, 0, code, out)
	assert.EqualValues(t, 3, hits.Load())

	hits.Store(0)
	_, _, code = f.run("payments")
	assert.Equal(t, 1, code)
	assert.EqualValues(t, 1, hits.Load())
}

func TestServerErrorsAreNotRetried(t *testing.T) {
	var hits atomic.Int32
	f := newCLIFixture(t, func(r chi.Router) {
		r.Get("/categories", func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			writeJSON(w, http.StatusInternalServerError, `{"error":"boom"}`)
		})
	})

	_, _, code := f.run("categories", "--retries", "3")
	assert.Equal(t, 1, code)
	assert.EqualValues(t, 1, hits.Load())
}

func TestInvalidOutputFormat(t *testing.T) {
	f := newCLIFixture(t, func(r chi.Router) {})
	_, stderr, code := f.run("categories", "-o", "xml")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unsupported output format")
}
