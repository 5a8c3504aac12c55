package ddl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	content := `
-- campaigns
CREATE TABLE campaigns (
  campaign_id STRING(36) NOT NULL,
) PRIMARY KEY (campaign_id);

   -- index comment
CREATE UNIQUE NULL_FILTERED INDEX idx ON campaigns(active_year);
`
	got := Split(content)

	assert.Equal(t, []string{
		"CREATE TABLE campaigns (\ncampaign_id STRING(36) NOT NULL,\n) PRIMARY KEY (campaign_id)",
		"CREATE UNIQUE NULL_FILTERED INDEX idx ON campaigns(active_year)",
	}, got)
}

func TestSplit_Empty(t *testing.T) {
	assert.Empty(t, Split("\n-- nothing here\n"))
}
