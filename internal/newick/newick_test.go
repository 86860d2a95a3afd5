package newick

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSimpleTree(t *testing.T) {
	root, err := Parse("((1,2),3,4);")
	require.NoError(t, err)
	require.Len(t, root.Children(), 3)
	require.Len(t, root.Leaves(), 4)
}

func TestParseLabelsAndOTTIDs(t *testing.T) {
	root, err := Parse("(homo_sapiens_ott770315,pan_troglodytes_ott417950)Hominini_ott1042120;")
	require.NoError(t, err)
	require.Equal(t, "Hominini", root.Name)
	require.True(t, root.HasExternalID)
	require.EqualValues(t, 1042120, root.ExternalID)

	leaves := root.Leaves()
	require.Len(t, leaves, 2)
	require.Equal(t, "homo sapiens", leaves[0].Name)
	require.EqualValues(t, 770315, leaves[0].ExternalID)
}

func TestParseDiscardsBranchLengths(t *testing.T) {
	root, err := Parse("((1:0.1,2:0.2):0.3,3:0.4,4:0.5);")
	require.NoError(t, err)
	require.Len(t, root.Leaves(), 4)
}

func TestParseRejectsMissingSemicolon(t *testing.T) {
	_, err := Parse("(1,2)")
	require.Error(t, err)
}

func TestParseRejectsUnbalancedParens(t *testing.T) {
	_, err := Parse("((1,2);")
	require.Error(t, err)
}

// Property 8: parse -> serialize -> parse yields a topologically
// equivalent tree with the same external IDs.
func TestRoundTrip(t *testing.T) {
	root, err := Parse("((1_ott1,2_ott2)_ott5,3_ott3,4_ott4);")
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, Write(&b, root))

	reparsed, err := Parse(b.String())
	require.NoError(t, err)

	require.Equal(t, root.Newick(), reparsed.Newick())
}
