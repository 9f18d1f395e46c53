package main

import (
	"context"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	formatter "github.com/bluexlab/logrus-formatter"
	"github.com/freightbook/freightbook/pkg/config"
	"github.com/freightbook/freightbook/pkg/importer/pipeline"
	"github.com/freightbook/freightbook/pkg/importer/storage/postgres"
	"github.com/freightbook/freightbook/pkg/util"
	"github.com/gobuffalo/pop"
	"github.com/gobuffalo/pop/logging"
	"github.com/sirupsen/logrus"
)

type CLI struct {
	Import struct {
		File string `arg:"" help:"Path to the follow-up workbook (.xlsx)" type:"existingfile"`
	} `cmd:"" help:"Import the follow-up workbook into the database"`
	Migrate struct {
		Path string `short:"p" long:"path" help:"Path to the migration files" type:"existingdir" default:"migrations"`
	} `cmd:"" help:"Migrate the database"`
	Config string `short:"c" long:"config" help:"Path to the configuration file" type:"existingfile" default:"config.yaml"`
}

type Config struct {
	Database util.PostgresDatabaseConfig `yaml:"database"`
}

type App struct{}

func (a *App) Run() {
	formatter.InitLogger()

	var cli CLI
	ctx := kong.Parse(&cli, kong.UsageOnError())
	switch ctx.Command() {
	case "import <file>":
		a.runImport(cli)
	case "migrate":
		a.runMigrate(cli)
	default:
	}
}

func (a *App) runImport(cli CLI) {
	if code := a.doImport(cli); code != 0 {
		os.Exit(code)
	}
}

// doImport returns the process exit code so the deferred storage teardown
// runs on every path, fatal ones included.
func (a *App) doImport(cli CLI) int {
	ctx := context.Background()

	var appConfig Config
	if err := config.FromFile(cli.Config, &appConfig); err != nil {
		logrus.Errorf("failed to load config: %v", err)
		return 128
	}

	dbStorage, err := postgres.NewStorageWithConfig(appConfig.Database)
	if err != nil {
		logrus.Errorf("failed to create database connection: %v", err)
		return 128
	}
	defer dbStorage.Close()

	importer := pipeline.NewImporter(dbStorage)
	summary, err := importer.ImportWorkbook(ctx, cli.Import.File)
	if err != nil {
		logrus.Errorf("import aborted: %v", err)
		return 1
	}

	// Row-level errors are counted, not fatal; the batch still exits 0.
	if summary.ErrorCount() > 0 {
		logrus.Warnf("%d of %d rows failed", summary.ErrorCount(), summary.RowsRead)
	}
	return 0
}

func (a *App) runMigrate(cli CLI) {
	var appConfig Config
	if err := config.FromFile(cli.Config, &appConfig); err != nil {
		logrus.Errorf("failed to load config: %v", err)
		os.Exit(128)
	}

	// set up the logger
	pop.SetLogger(func(lvl logging.Level, s string, args ...interface{}) {
		switch lvl {
		case logging.Debug:
			logrus.Debugf(s, args...)
		case logging.Info:
			logrus.Infof(s, args...)
		case logging.Warn:
			logrus.Warnf(s, args...)
		case logging.Error:
			logrus.Errorf(s, args...)
		case logging.SQL:
			// Do nothing
		}
	})

	// setup database connection
	cd := pop.ConnectionDetails{
		Dialect:  "postgres",
		Database: appConfig.Database.Database,
		Host:     appConfig.Database.Host,
		Port:     strconv.Itoa(appConfig.Database.Port),
		User:     appConfig.Database.User,
		Password: appConfig.Database.Password,
	}
	conn, err := pop.NewConnection(&cd)
	if err != nil {
		logrus.Errorf("failed to create connection: %v", err)
		os.Exit(128)
	}

	// create the database if it doesn't exist
	if err = conn.Dialect.CreateDB(); err != nil {
		logrus.Warnf("failed to create database: %v", err)
	}

	migrator, err := pop.NewFileMigrator(cli.Migrate.Path, conn)
	if err != nil {
		logrus.Errorf("failed to create migrator: %v", err)
		os.Exit(128)
	}
	// Remove SchemaPath to prevent migrator try to dump schema.
	migrator.SchemaPath = ""

	if err = migrator.Up(); err != nil {
		logrus.Errorf("failed to migrate: %v", err)
		os.Exit(1)
	}
}

func main() {
	app := App{}
	app.Run()
}
