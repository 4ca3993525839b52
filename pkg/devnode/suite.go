package devnode

import (
	"context"

	"github.com/stretchr/testify/suite"
)

// Suite is a testify suite that runs Fixture once against a dev node and
// gives every test a fresh copy of the resulting state.
//
// A snapshot is pushed before the fixture and before each test, and popped
// and restored after each test and after the suite, so the node ends the
// suite as it started.
//
//	type TokenSuite struct{ devnode.Suite }
//
//	func TestToken(t *testing.T) {
//		suite.Run(t, &TokenSuite{devnode.Suite{URL: devnode.DefaultURL, Fixture: deployAll}})
//	}
type Suite struct {
	suite.Suite

	// URL of the node, DefaultURL when empty
	URL     string
	Fixture func(ctx context.Context, node *Snapshotter) error

	node      *Snapshotter
	snapshots []string
}

// Node returns the connection to the dev node
func (s *Suite) Node() *Snapshotter { return s.node }

func (s *Suite) SetupSuite() {
	url := s.URL
	if url == "" {
		url = DefaultURL
	}
	node, err := Dial(context.Background(), url)
	s.Require().NoError(err)
	s.node = node

	s.push()
	if s.Fixture != nil {
		s.Require().NoError(s.Fixture(context.Background(), s.node))
	}
}

func (s *Suite) SetupTest() {
	s.push()
}

func (s *Suite) TearDownTest() {
	s.pop()
}

func (s *Suite) TearDownSuite() {
	if s.node == nil {
		return
	}
	s.pop()
	s.node.Close()
}

func (s *Suite) push() {
	id, err := s.node.Take(context.Background())
	s.Require().NoError(err)
	s.snapshots = append(s.snapshots, id)
}

func (s *Suite) pop() {
	s.Require().NotEmpty(s.snapshots, "no snapshot")
	id := s.snapshots[len(s.snapshots)-1]
	s.snapshots = s.snapshots[:len(s.snapshots)-1]
	s.Require().NoError(s.node.Restore(context.Background(), id))
}
