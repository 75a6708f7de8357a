package fragments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHTML = `
<html><body>
  <h1>Senior Backend Engineer</h1>
  <h2>Requirements</h2>
  <ul>
    <li>5+ years of experience with Go or Python</li>
    <li>Experience operating Kubernetes in production</li>
  </ul>
  <h2>Preferred Qualifications</h2>
  <ul>
    <li>Exposure to Terraform and AWS</li>
  </ul>
  <h2>Benefits</h2>
  <p>Comprehensive health coverage and flexible hours.</p>
</body></html>`

func TestExtractFromHTML_TracksSections(t *testing.T) {
	fragments, err := ExtractFromHTML(sampleHTML)
	require.NoError(t, err)
	require.Len(t, fragments, 4)

	assert.Equal(t, "5+ years of experience with Go or Python", fragments[0].Text)
	assert.Equal(t, "requirements", fragments[0].Section)
	assert.Equal(t, "requirements", fragments[1].Section)

	assert.Equal(t, "Exposure to Terraform and AWS", fragments[2].Text)
	assert.Equal(t, "nice_to_have", fragments[2].Section)

	assert.Equal(t, "Comprehensive health coverage and flexible hours.", fragments[3].Text)
	assert.Equal(t, "benefits", fragments[3].Section)
}

func TestExtractFromHTML_SkipsShortFragments(t *testing.T) {
	fragments, err := ExtractFromHTML(`<html><body><p>Short.</p><p>This one is long enough to keep.</p></body></html>`)
	require.NoError(t, err)
	require.Len(t, fragments, 1)
	assert.Equal(t, "This one is long enough to keep.", fragments[0].Text)
}

func TestExtractFromHTML_UnrecognizedHeadingClearsSection(t *testing.T) {
	html := `
<html><body>
  <h2>Requirements</h2>
  <li>Experience with distributed systems</li>
  <h2>Our journey so far</h2>
  <li>We started in a garage in 2015</li>
</body></html>`

	fragments, err := ExtractFromHTML(html)
	require.NoError(t, err)
	require.Len(t, fragments, 2)
	assert.Equal(t, "requirements", fragments[0].Section)
	assert.Equal(t, "", fragments[1].Section)
}

func TestSplitText_SectionsAndBullets(t *testing.T) {
	text := `Requirements:
- 5+ years of experience with Go or Python
- Experience operating Kubernetes in production

Nice to have:
* Exposure to Terraform and AWS
`

	fragments := SplitText(text)
	require.Len(t, fragments, 3)

	assert.Equal(t, "5+ years of experience with Go or Python", fragments[0].Text)
	assert.Equal(t, "requirements", fragments[0].Section)
	assert.Equal(t, "nice_to_have", fragments[2].Section)
	assert.Equal(t, "Exposure to Terraform and AWS", fragments[2].Text)
}

func TestSplitText_SkipsShortLines(t *testing.T) {
	fragments := SplitText("ok\nA line long enough to become a fragment\n")
	require.Len(t, fragments, 1)
	assert.Equal(t, "A line long enough to become a fragment", fragments[0].Text)
}

func TestClassifySection(t *testing.T) {
	tests := []struct {
		heading string
		want    string
	}{
		{"Requirements", "requirements"},
		{"Minimum Qualifications", "requirements"},
		{"Preferred Qualifications", "nice_to_have"},
		{"Nice to Have", "nice_to_have"},
		{"Bonus Points", "nice_to_have"},
		{"What You'll Do", "responsibilities"},
		{"Responsibilities", "responsibilities"},
		{"Benefits & Perks", "benefits"},
		{"Education", "education"},
		{"About Us", "about"},
		{"Our Journey", ""},
	}

	for _, tt := range tests {
		t.Run(tt.heading, func(t *testing.T) {
			assert.Equal(t, tt.want, classifySection(tt.heading))
		})
	}
}

func TestLooksLikeHeading(t *testing.T) {
	assert.True(t, looksLikeHeading("Requirements:"))
	assert.True(t, looksLikeHeading("Nice to have"))
	assert.False(t, looksLikeHeading("We are looking for an engineer with experience building distributed systems at scale"))
	assert.False(t, looksLikeHeading("Go and Python experience required for this role"))
}
