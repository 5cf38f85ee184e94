package repo

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/vitrine-app/vitrine-api/internal/config"
	"github.com/vitrine-app/vitrine-api/internal/infra/airtable"
)

// fakeStore is an in-memory stand-in for the external tabular store,
// speaking just enough of its record API for the gateway tests: CRUD
// per table, plus the equality formulas and single-field sorts the
// repos emit.
type fakeStore struct {
	srv    *httptest.Server
	tables map[string][]storeRecord
	nextID int
}

type storeRecord struct {
	ID          string         `json:"id"`
	CreatedTime time.Time      `json:"createdTime"`
	Fields      map[string]any `json:"fields"`
}

func newFakeStore() *fakeStore {
	fs := &fakeStore{tables: map[string][]storeRecord{}}
	fs.srv = httptest.NewServer(http.HandlerFunc(fs.handle))
	return fs
}

func (fs *fakeStore) Close() { fs.srv.Close() }

func (fs *fakeStore) client() *airtable.Client {
	return &airtable.Client{
		BaseURL:    fs.srv.URL,
		APIKey:     "key-test",
		BaseID:     "appTest",
		HTTPClient: fs.srv.Client(),
		Logger:     zap.NewNop(),
	}
}

func (fs *fakeStore) seed(table string, fields map[string]any) string {
	fs.nextID++
	id := fmt.Sprintf("rec%03d", fs.nextID)
	fs.tables[table] = append(fs.tables[table], storeRecord{
		ID:          id,
		CreatedTime: time.Now().UTC(),
		Fields:      fields,
	})
	return id
}

func (fs *fakeStore) count(table string) int { return len(fs.tables[table]) }

func (fs *fakeStore) handle(w http.ResponseWriter, r *http.Request) {
	// path: /{baseID}/{table}[/{recordID}]
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 2 {
		http.NotFound(w, r)
		return
	}
	table := parts[1]

	writeJSON := func(status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		body, _ := sonic.Marshal(v)
		_, _ = w.Write(body)
	}

	if len(parts) == 3 {
		id := parts[2]
		idx := fs.indexOf(table, id)

		switch r.Method {
		case http.MethodGet:
			if idx < 0 {
				writeJSON(http.StatusNotFound, map[string]any{"error": map[string]string{"type": "NOT_FOUND"}})
				return
			}
			writeJSON(http.StatusOK, fs.tables[table][idx])
		case http.MethodPatch:
			if idx < 0 {
				writeJSON(http.StatusNotFound, map[string]any{"error": map[string]string{"type": "NOT_FOUND"}})
				return
			}
			var payload struct {
				Fields map[string]any `json:"fields"`
			}
			_ = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&payload)
			for k, v := range payload.Fields {
				fs.tables[table][idx].Fields[k] = v
			}
			writeJSON(http.StatusOK, fs.tables[table][idx])
		case http.MethodDelete:
			if idx < 0 {
				writeJSON(http.StatusNotFound, map[string]any{"error": map[string]string{"type": "NOT_FOUND"}})
				return
			}
			fs.tables[table] = append(fs.tables[table][:idx], fs.tables[table][idx+1:]...)
			writeJSON(http.StatusOK, map[string]any{"deleted": true, "id": id})
		}
		return
	}

	switch r.Method {
	case http.MethodPost:
		var payload struct {
			Fields map[string]any `json:"fields"`
		}
		_ = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&payload)
		id := fs.seed(table, payload.Fields)
		writeJSON(http.StatusOK, fs.tables[table][fs.indexOf(table, id)])
	case http.MethodGet:
		records := fs.filter(table, r.URL.Query().Get("filterByFormula"))
		if field := r.URL.Query().Get("sort[0][field]"); field != "" {
			desc := r.URL.Query().Get("sort[0][direction]") == "desc"
			sort.SliceStable(records, func(i, j int) bool {
				a, _ := records[i].Fields[field].(string)
				b, _ := records[j].Fields[field].(string)
				if desc {
					return a > b
				}
				return a < b
			})
		}
		writeJSON(http.StatusOK, map[string]any{"records": records})
	}
}

func (fs *fakeStore) indexOf(table, id string) int {
	for i, rec := range fs.tables[table] {
		if rec.ID == id {
			return i
		}
	}
	return -1
}

var clauseRe = regexp.MustCompile(`\{(\w+)\} = '((?:[^'\\]|\\.)*)'`)

// filter evaluates the equality formulas the repos build: a bare
// clause, AND(...) of clauses, or OR(...) of clauses.
func (fs *fakeStore) filter(table, formula string) []storeRecord {
	records := append([]storeRecord(nil), fs.tables[table]...)
	if formula == "" {
		return records
	}

	any := strings.HasPrefix(formula, "OR(")
	clauses := clauseRe.FindAllStringSubmatch(formula, -1)

	out := records[:0]
	for _, rec := range records {
		matched := 0
		for _, cl := range clauses {
			want := strings.ReplaceAll(strings.ReplaceAll(cl[2], `\'`, `'`), `\\`, `\`)
			if got, _ := rec.Fields[cl[1]].(string); got == want {
				matched++
			}
		}
		if (any && matched > 0) || (!any && matched == len(clauses)) {
			out = append(out, rec)
		}
	}
	return out
}

func testCfg() *config.Config {
	return &config.Config{
		Airtable: config.AirtableCfg{
			ProjectsTable: "Projects",
			CommentsTable: "Comments",
			LikesTable:    "Likes",
			UsersTable:    "Users",
		},
	}
}
