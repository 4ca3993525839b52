package devnode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// fakeNode keeps a single counter as chain state and implements hardhat's
// snapshot semantics on it
type fakeNode struct {
	mu        sync.Mutex
	value     int
	nextID    int
	snapshots map[int]int
}

func newFakeNode(t *testing.T) (*fakeNode, *httptest.Server) {
	t.Helper()
	n := &fakeNode{nextID: 1, snapshots: map[int]int{}}
	srv := httptest.NewServer(http.HandlerFunc(n.serve))
	t.Cleanup(srv.Close)
	return n, srv
}

func (n *fakeNode) serve(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     json.RawMessage   `json:"id"`
		Method string            `json:"method"`
		Params []json.RawMessage `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
	switch req.Method {
	case "evm_snapshot":
		id := n.nextID
		n.nextID++
		n.snapshots[id] = n.value
		resp["result"] = fmt.Sprintf("0x%x", id)
	case "evm_revert":
		var hexID string
		_ = json.Unmarshal(req.Params[0], &hexID)
		id, _ := strconv.ParseInt(hexID[2:], 16, 64)
		value, ok := n.snapshots[int(id)]
		if ok {
			n.value = value
			for sid := range n.snapshots {
				if sid >= int(id) {
					delete(n.snapshots, sid)
				}
			}
		}
		resp["result"] = ok
	case "test_set":
		_ = json.Unmarshal(req.Params[0], &n.value)
		resp["result"] = true
	case "test_get":
		resp["result"] = n.value
	default:
		resp["error"] = map[string]any{"code": -32601, "message": "method not found"}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (n *fakeNode) state() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.value
}

func setValue(ctx context.Context, node *Snapshotter, v int) error {
	var ok bool
	return node.Client().CallContext(ctx, &ok, "test_set", v)
}

func getValue(ctx context.Context, node *Snapshotter) (int, error) {
	var v int
	err := node.Client().CallContext(ctx, &v, "test_get")
	return v, err
}

func TestSnapshotter(t *testing.T) {
	ctx := context.Background()
	fake, srv := newFakeNode(t)

	node, err := Dial(ctx, srv.URL)
	require.NoError(t, err)
	defer node.Close()

	first, err := node.Take(ctx)
	require.NoError(t, err)
	require.NoError(t, setValue(ctx, node, 7))
	second, err := node.Take(ctx)
	require.NoError(t, err)
	require.NoError(t, setValue(ctx, node, 9))

	require.NoError(t, node.Restore(ctx, second))
	assert.Equal(t, 7, fake.state())

	require.NoError(t, node.Restore(ctx, first))
	assert.Equal(t, 0, fake.state())

	// restoring drops the snapshot
	assert.ErrorContains(t, node.Restore(ctx, second), "snapshot not found")
}

type counterSuite struct {
	Suite
}

func (s *counterSuite) TestMutates() {
	ctx := context.Background()
	v, err := getValue(ctx, s.Node())
	s.Require().NoError(err)
	s.Equal(1, v)
	s.Require().NoError(setValue(ctx, s.Node(), 100))
}

func (s *counterSuite) TestSeesFixtureState() {
	v, err := getValue(context.Background(), s.Node())
	s.Require().NoError(err)
	s.Equal(1, v)
	s.Require().NoError(setValue(context.Background(), s.Node(), 200))
}

func TestSuite(t *testing.T) {
	fake, srv := newFakeNode(t)
	fixtureRuns := 0

	suite.Run(t, &counterSuite{Suite{
		URL: srv.URL,
		Fixture: func(ctx context.Context, node *Snapshotter) error {
			fixtureRuns++
			return setValue(ctx, node, 1)
		},
	}})

	assert.Equal(t, 1, fixtureRuns)
	assert.Equal(t, 0, fake.state())
}
