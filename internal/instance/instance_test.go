package instance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sample = `***************************************************************
jobs:  4
horizon: 10
1 resources
***************************************************************
PRECEDENCE RELATIONS:
jobnr.    #successors   successors
1         2              2   3
2         1              4
3         1              4
4         0
***************************************************************
REQUESTS/DURATIONS:
jobnr.  resource  duration  demands
1       1         0
2       1         3         1 1 1
3       1         2         1 1
4       1         0
***************************************************************
RESOURCEAVAILABILITIES:
R1
1 1 1 1 1 1 1 1 1 1
***************************************************************
`

func TestParse(t *testing.T) {
	inst, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.Equal(t, 4, inst.NJobs)
	require.Equal(t, 10, inst.Horizon)
	require.Equal(t, 1, inst.NResources)
	require.Equal(t, []int{0, 3, 2, 0}, inst.Durations)
	require.Equal(t, []int{1, 2}, inst.Successors[0])
	require.Equal(t, []int{3}, inst.Successors[1])
	require.Equal(t, []int{0}, inst.Predecessors[1])
	require.Equal(t, []int{1, 2}, inst.Predecessors[3])
	require.Equal(t, []int{1, 1, 1}, inst.Requests[1][0])
	require.Len(t, inst.Capacities[0], 10)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse(strings.NewReader("jobs: not-a-number\n"))
	require.Error(t, err)
}
