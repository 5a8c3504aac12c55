// Command migrate prepares the collecte database: on Spanner it creates the
// instance and database when missing and applies the DDL files in order; on
// postgres or sqlite it applies the embedded schema.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/collecte-service/internal/app/collecte/sqlrepo"
	"github.com/light-bringer/collecte-service/internal/config"
	"github.com/light-bringer/collecte-service/internal/pkg/ddl"
	"github.com/light-bringer/collecte-service/migrations"
)

var (
	projectID  = flag.String("project", envOr("SPANNER_PROJECT_ID", "test-project"), "GCP project ID")
	instanceID = flag.String("instance", envOr("SPANNER_INSTANCE_ID", "dev-instance"), "Spanner instance ID")
	databaseID = flag.String("database", envOr("SPANNER_DATABASE_ID", "collecte-db"), "Spanner database ID")
	migrateDir = flag.String("migrations", "", "Directory of Spanner DDL files (default: the embedded schema)")
	driver     = flag.String("driver", envOr("STORE_DRIVER", config.DriverSpanner), "Store driver: spanner, postgres or sqlite")
	dsn        = flag.String("dsn", envOr("DB_DSN", "file:collecte.db"), "SQL data source for postgres/sqlite")
)

func main() {
	flag.Parse()
	ctx := context.Background()

	var err error
	switch *driver {
	case config.DriverSpanner:
		err = migrateSpanner(ctx, spannerTarget{
			project:  *projectID,
			instance: *instanceID,
			database: *databaseID,
			emulator: os.Getenv("SPANNER_EMULATOR_HOST"),
		})
	case config.DriverPostgres, config.DriverSQLite:
		err = migrateSQL(ctx)
	default:
		err = fmt.Errorf("unknown driver %q", *driver)
	}
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully!")
}

// spannerTarget names the Spanner resources the collecte service runs on.
type spannerTarget struct {
	project, instance, database string
	emulator                    string
}

func (t spannerTarget) projectPath() string  { return "projects/" + t.project }
func (t spannerTarget) instancePath() string { return t.projectPath() + "/instances/" + t.instance }
func (t spannerTarget) databasePath() string { return t.instancePath() + "/databases/" + t.database }

func migrateSpanner(ctx context.Context, t spannerTarget) error {
	if t.emulator != "" {
		log.Printf("Using Spanner emulator at %s", t.emulator)
	}

	instances, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer instances.Close()

	databases, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create database admin client: %w", err)
	}
	defer databases.Close()

	if err := ensure("instance "+t.instance, t.emulator != "",
		func() error {
			_, err := instances.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: t.instancePath()})
			return err
		},
		func() error { return createInstance(ctx, instances, t) },
	); err != nil {
		return err
	}

	if err := ensure("database "+t.database, t.emulator != "",
		func() error {
			_, err := databases.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: t.databasePath()})
			return err
		},
		func() error { return createDatabase(ctx, databases, t) },
	); err != nil {
		return err
	}

	return applyDDL(ctx, databases, t)
}

// ensure runs create when get reports NotFound. A concurrent creation
// (AlreadyExists) counts as success. Other lookup errors are tolerated on
// the emulator, which answers some admin calls inconsistently.
func ensure(what string, lenient bool, get, create func() error) error {
	log.Printf("Ensuring %s exists...", what)

	err := get()
	switch {
	case err == nil:
		log.Printf("%s already exists", what)
		return nil
	case status.Code(err) != codes.NotFound:
		if lenient {
			log.Printf("Proceeding with %s (emulator mode): %v", what, err)
			return nil
		}
		return fmt.Errorf("failed to look up %s: %w", what, err)
	}

	log.Printf("Creating %s...", what)
	if err := create(); err != nil && status.Code(err) != codes.AlreadyExists {
		return fmt.Errorf("failed to create %s: %w", what, err)
	}
	return nil
}

func createInstance(ctx context.Context, admin *instance.InstanceAdminClient, t spannerTarget) error {
	op, err := admin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     t.projectPath(),
		InstanceId: t.instance,
		Instance: &instancepb.Instance{
			Config:      t.projectPath() + "/instanceConfigs/emulator-config",
			DisplayName: "Collecte",
			NodeCount:   1,
		},
	})
	if err != nil {
		return err
	}
	_, err = op.Wait(ctx)
	return err
}

func createDatabase(ctx context.Context, admin *database.DatabaseAdminClient, t spannerTarget) error {
	op, err := admin.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          t.instancePath(),
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", t.database),
	})
	if err != nil {
		return err
	}
	_, err = op.Wait(ctx)
	return err
}

// ddlSource returns the migration files, either from -migrations or the
// copy embedded in the binary.
func ddlSource() (fs.FS, string) {
	if *migrateDir != "" {
		return os.DirFS(*migrateDir), "."
	}
	return migrations.Spanner, "spanner"
}

func applyDDL(ctx context.Context, admin *database.DatabaseAdminClient, t spannerTarget) error {
	source, dir := ddlSource()

	// fs.Glob returns names in lexical order
	files, err := fs.Glob(source, path.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}
	if len(files) == 0 {
		return errors.New("no migration files found")
	}

	for _, file := range files {
		name := path.Base(file)
		content, err := fs.ReadFile(source, file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}

		log.Printf("Applying %s...", name)
		op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   t.databasePath(),
			Statements: ddl.Split(string(content)),
		})
		if err != nil {
			return fmt.Errorf("failed to start DDL update for %s: %w", name, err)
		}
		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to apply DDL for %s: %w", name, err)
		}
	}
	return nil
}

// migrateSQL applies the embedded postgres/sqlite schema. The schema is
// idempotent so reruns are harmless.
func migrateSQL(ctx context.Context) error {
	log.Printf("Migrating %s database...", *driver)
	db, err := sqlrepo.Open(ctx, *driver, *dsn, sqlrepo.Options{})
	if err != nil {
		return err
	}
	defer db.Close()
	return sqlrepo.Migrate(ctx, db)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
