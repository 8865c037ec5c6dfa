package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func (s *ConfigTestSuite) TearDownTest() {
	Reset()
}

func (s *ConfigTestSuite) TestDefault() {
	require := s.Require()

	c := Current()
	require.Empty(c.DefaultHost)
	require.False(c.HandleQueryParams)
	require.Equal(StorageNone, c.Storage.Kind)
}

func (s *ConfigTestSuite) TestLoadFile() {
	require := s.Require()

	path := filepath.Join(s.T().TempDir(), "fetchmock.yaml")
	err := os.WriteFile(path, []byte(`
default_host: my-host
handle_query_params: true
storage:
  kind: stdout
  skip_json_paths:
    - password
`), 0o600)
	require.NoError(err)

	c, err := Load(path)
	require.NoError(err)
	require.Equal("my-host", c.DefaultHost)
	require.True(c.HandleQueryParams)
	require.Equal(StorageStdout, c.Storage.Kind)
	require.Equal([]string{"password"}, c.Storage.SkipJSONPaths)
	require.Equal("fetchmock", c.Storage.Elasticsearch.Index)

	require.Equal(*c, Current())
}

func (s *ConfigTestSuite) TestLoadEnvOverridesFile() {
	require := s.Require()

	path := filepath.Join(s.T().TempDir(), "fetchmock.yaml")
	require.NoError(os.WriteFile(path, []byte("default_host: file-host\n"), 0o600))
	s.T().Setenv("FETCHMOCK_DEFAULT_HOST", "env-host")
	s.T().Setenv("FETCHMOCK_STORAGE__KIND", "elasticsearch")

	c, err := Load(path)
	require.NoError(err)
	require.Equal("env-host", c.DefaultHost)
	require.Equal(StorageElasticsearch, c.Storage.Kind)
}

func (s *ConfigTestSuite) TestLoadMissingFile() {
	_, err := Load(filepath.Join(s.T().TempDir(), "missing.yaml"))
	s.Require().Error(err)
}

func (s *ConfigTestSuite) TestReset() {
	require := s.Require()

	Set(Config{DefaultHost: "other", HandleQueryParams: true})
	require.Equal("other", Current().DefaultHost)

	Reset()
	require.Equal(Default(), Current())
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}
