/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package ioadapter_test

import (
	"os"
	"testing"

	"github.com/Cytosine2020/HDAStar/internal/ioadapter"
	"github.com/Cytosine2020/HDAStar/internal/tassert"
)

const sample = "3 5\n" +
	"#####\n" +
	"@    \n" +
	"#####\n"

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp("", "hdastar-maze-*.txt")
	tassert.CheckFatal(t, err)
	_, err = f.WriteString(content)
	tassert.CheckFatal(t, err)
	tassert.CheckFatal(t, f.Close())
	t.Cleanup(func() { os.Remove(f.Name()) })
	return f.Name()
}

func TestOpenRejectsMissingOpening(t *testing.T) {
	path := writeTemp(t, "1 3\n   \n")
	_, err := ioadapter.Open(path)
	tassert.Errorf(t, err != nil, "ioadapter: Open should reject a maze with no '@' or '%%' opening")
}

func TestOpenParsesDimensionsAndWallsOffOpenings(t *testing.T) {
	path := writeTemp(t, "3 5\n#####\n@   %\n#####\n")
	m, err := ioadapter.Open(path)
	tassert.CheckFatal(t, err)
	defer m.Close()

	tassert.Errorf(t, m.Rows == 3 && m.Cols == 5, "ioadapter: parsed %dx%d, want 3x5", m.Rows, m.Cols)
	tassert.Errorf(t, m.At(0, 1) == '#', "ioadapter: '@' opening was not walled off during the search")
	tassert.Errorf(t, m.At(4, 1) == '#', "ioadapter: '%%' opening was not walled off during the search")
	tassert.Errorf(t, m.ForwardStart == (ioadapter.Point{X: 1, Y: 1}), "ioadapter: ForwardStart = %+v, want (1,1)", m.ForwardStart)
	tassert.Errorf(t, m.ForwardGoal == (ioadapter.Point{X: 4, Y: 1}), "ioadapter: ForwardGoal = %+v, want (4,1)", m.ForwardGoal)
	tassert.Errorf(t, m.ReverseStart == (ioadapter.Point{X: 3, Y: 1}), "ioadapter: ReverseStart = %+v, want (3,1)", m.ReverseStart)
	tassert.Errorf(t, m.ReverseGoal == (ioadapter.Point{X: 0, Y: 1}), "ioadapter: ReverseGoal = %+v, want (0,1)", m.ReverseGoal)
}

func TestMarkPathRestoreAndStripRoundTrip(t *testing.T) {
	path := writeTemp(t, "3 5\n#####\n@   %\n#####\n")
	m, err := ioadapter.Open(path)
	tassert.CheckFatal(t, err)

	m.MarkPath(ioadapter.Point{X: 2, Y: 1}, []ioadapter.Point{{X: 1, Y: 1}}, []ioadapter.Point{{X: 3, Y: 1}})
	tassert.CheckFatal(t, m.Close())

	raw, err := os.ReadFile(path)
	tassert.CheckFatal(t, err)
	content := string(raw)
	tassert.Errorf(t, content == "3 5\n#####\n@***%\n#####\n", "ioadapter: unexpected file content after MarkPath+Close:\n%s", content)

	tassert.CheckFatal(t, ioadapter.Strip(path))
	raw, err = os.ReadFile(path)
	tassert.CheckFatal(t, err)
	content = string(raw)
	tassert.Errorf(t, content == "3 5\n#####\n@   %\n#####\n", "ioadapter: Strip did not restore the original body:\n%s", content)
}
