package devops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDBEntries(t *testing.T) {
	value := `
- name: Prod
  host: attendance.cluster.local
  username: timeclock
  password: s3cret
  database: attendance
- name: dev
  host: localhost:3307
  username: root
  password: development
  database: attendance_dev
`
	entries, err := ParseDBEntries(value)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "timeclock:s3cret@tcp(attendance.cluster.local:3306)/attendance?parseTime=true&loc=UTC", entries["prod"].GetDSN("mysql"))
	assert.Equal(t, "root:development@tcp(localhost:3307)/attendance_dev?parseTime=true&loc=UTC", entries["dev"].GetDSN("mysql"))
	assert.Equal(t, "host=localhost port=3307 user=root password=development dbname=attendance_dev sslmode=require TimeZone=UTC", entries["dev"].GetDSN("postgres"))
}

func TestParseDBEntries_Invalid(t *testing.T) {
	_, err := ParseDBEntries("databases: [")
	assert.Error(t, err)
}
