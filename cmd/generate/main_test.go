package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/trade-journal/internal/logger"
	"github.com/rxtech-lab/trade-journal/internal/store"
	"github.com/stretchr/testify/suite"
)

type GenerateCmdTestSuite struct {
	suite.Suite
	tempDir string
}

func TestGenerateCmdSuite(t *testing.T) {
	suite.Run(t, new(GenerateCmdTestSuite))
}

func (suite *GenerateCmdTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
	suite.T().Chdir(suite.tempDir)
}

func (suite *GenerateCmdTestSuite) TestSchemaGeneration() {
	main()

	for _, name := range []string{configSchemaName, filterSchemaName} {
		content, err := os.ReadFile(filepath.Join(suite.tempDir, "config", name))
		suite.Require().NoError(err)
		suite.NotEmpty(content)
	}
}

func (suite *GenerateCmdTestSuite) TestSampleConfigGeneration() {
	main()

	content, err := os.ReadFile(filepath.Join(suite.tempDir, "config", sampleConfigName))
	suite.Require().NoError(err)
	suite.Contains(string(content), "# yaml-language-server: $schema="+configSchemaName)
	suite.Contains(string(content), "database_path: journal.duckdb")
}

func (suite *GenerateCmdTestSuite) TestSampleConfigNotOverwritten() {
	main()

	sampleConfigPath := filepath.Join(suite.tempDir, "config", sampleConfigName)
	suite.Require().NoError(os.WriteFile(sampleConfigPath, []byte("export_dir: mine\n"), 0644))

	main()

	content, err := os.ReadFile(sampleConfigPath)
	suite.Require().NoError(err)
	suite.Equal("export_dir: mine\n", string(content))
}

func (suite *GenerateCmdTestSuite) TestSampleTradesCanBeImported() {
	main()

	reader, err := store.NewDuckDBStore("", logger.NewNopLogger())
	suite.Require().NoError(err)
	defer reader.Close()

	trades, err := reader.ReadTradesCSV(context.Background(), filepath.Join(suite.tempDir, "data", sampleTradesName))
	suite.Require().NoError(err)
	suite.Len(trades, sampleTradeCount)

	for i := range trades {
		suite.NoError(trades[i].Validate())
	}
}
