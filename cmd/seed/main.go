// seed prepara una base recién migrada: crea el empleado administrador y, opcionalmente,
// importa leads desde un CSV exportado del CRM anterior.
//
// Uso: go run ./cmd/seed [-csv leads.csv] [-latin1]
// Variables: SEED_ADMIN_USERNAME, SEED_ADMIN_EMAIL, SEED_ADMIN_PASSWORD (además de las de la API).
//
// Columnas del CSV (con cabecera): name,phone,email,source,status,assignedTo,project,description
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/presales-crm/internal/application/dto"
	"github.com/jhoicas/presales-crm/internal/application/leads"
	"github.com/jhoicas/presales-crm/internal/application/usecase"
	"github.com/jhoicas/presales-crm/internal/domain"
	"github.com/jhoicas/presales-crm/internal/infrastructure/postgres"
	"github.com/jhoicas/presales-crm/pkg/config"
	"github.com/jhoicas/presales-crm/pkg/logger"
)

var csvColumns = []string{"name", "phone", "email", "source", "status", "assignedTo", "project", "description"}

func main() {
	csvPath := flag.String("csv", "", "CSV de leads a importar")
	latin1 := flag.Bool("latin1", false, "el CSV viene en ISO-8859-1")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"}).Component("seed")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	txRunner := postgres.NewTxRunner(pool)
	empRepo := postgres.NewEmployeeRepository(pool)

	adminID, err := ensureAdmin(ctx, usecase.NewUserUseCase(txRunner, empRepo, nil, log), empRepo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("crear administrador")
	}

	if *csvPath == "" {
		return
	}
	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	var r io.Reader = f
	if *latin1 {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	rows, err := readLeads(r)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

	leadUC := leads.NewUseCase(txRunner, postgres.NewLeadRepository(pool), log)
	var ok, failed int
	for i, row := range rows {
		id, err := leadUC.Create(ctx, adminID, row)
		if err != nil {
			failed++
			log.Warn().Err(err).Int("row", i+2).Str("phone", row.Phone).Msg("lead omitido")
			continue
		}
		ok++
		log.Debug().Str("lead_id", id).Msg("lead importado")
	}
	log.Info().Int("imported", ok).Int("skipped", failed).Msg("importación terminada")
}

// ensureAdmin registra el administrador si no existe y devuelve su emp_id.
func ensureAdmin(ctx context.Context, users *usecase.UserUseCase, empRepo *postgres.EmployeeRepo, log *logger.Logger) (string, error) {
	username := envOr("SEED_ADMIN_USERNAME", "admin")
	email := envOr("SEED_ADMIN_EMAIL", "admin@presales.local")

	existing, err := empRepo.FindByLogin(ctx, username, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		log.Info().Str("emp_id", existing.ID).Msg("administrador ya existe")
		return existing.ID, nil
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		return "", errors.New("SEED_ADMIN_PASSWORD requerido para crear el administrador")
	}
	id, err := users.Register(ctx, "", dto.RegisterEmployeeRequest{
		EmpFirstName: "Admin",
		EmpLastName:  "CRM",
		RoleID:       "ROLE_ADMIN",
		EmpStatus:    "Active",
		Username:     username,
		Email:        email,
		Password:     password,
	})
	if err != nil {
		return "", err
	}
	log.Info().Str("emp_id", id).Str("username", username).Msg("administrador creado")
	return id, nil
}

// readLeads lee el CSV completo. La cabecera define el orden de las columnas; las columnas
// desconocidas se ignoran y name/phone son obligatorias.
func readLeads(r io.Reader) ([]dto.CreateLeadRequest, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cabecera: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, col := range []string{"name", "phone"} {
		if _, ok := idx[col]; !ok {
			return nil, domain.Validation(col, "columna "+col+" requerida")
		}
	}

	var out []dto.CreateLeadRequest
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		out = append(out, dto.CreateLeadRequest{
			Name:        get(csvColumns[0]),
			Phone:       get(csvColumns[1]),
			Email:       get(csvColumns[2]),
			Source:      get(csvColumns[3]),
			Status:      get(csvColumns[4]),
			AssignedTo:  get(csvColumns[5]),
			Project:     get(csvColumns[6]),
			Description: get(csvColumns[7]),
		})
	}
	return out, nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
