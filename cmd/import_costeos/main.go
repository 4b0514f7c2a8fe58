// import_costeos importa costeos masivos desde un CSV exportado de Excel.
// Los exports de Excel en español suelen venir en Latin-1 (ISO-8859-1) y con
// punto y coma como separador; esta herramienta normaliza ambos.
//
// Columnas esperadas (con encabezado):
//
//	producto;costo_producto;costo_envio;otros_costos;precio_sugerido;margen_deseado
//
// Uso: go run ./cmd/import_costeos <user_id> <archivo.csv>
// Requiere las mismas variables de entorno de conexión que la API (DATABASE_URL o DB_*).
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/costealo/ofertas-api/internal/domain/entity"
	"github.com/costealo/ofertas-api/internal/infrastructure/postgres"
	"github.com/costealo/ofertas-api/pkg/config"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "uso: import_costeos <user_id> <archivo.csv>")
		os.Exit(1)
	}
	userID, csvPath := os.Args[1], os.Args[2]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()
	repo := postgres.NewCosteoRepository(pool)

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// Latin-1 → UTF-8: los nombres de producto con tildes y eñes llegan bien.
	reader := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	reader.Comma = ';'
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "leer CSV: %v\n", err)
		os.Exit(1)
	}
	if len(records) < 2 {
		fmt.Fprintln(os.Stderr, "el CSV no tiene filas de datos")
		os.Exit(1)
	}

	imported, skipped := 0, 0
	for i, rec := range records[1:] {
		line := i + 2 // 1-indexado contando el encabezado
		c, err := parseRow(userID, rec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fila %d omitida: %v\n", line, err)
			skipped++
			continue
		}
		if err := repo.Create(c); err != nil {
			fmt.Fprintf(os.Stderr, "fila %d: insertar: %v\n", line, err)
			skipped++
			continue
		}
		imported++
	}

	fmt.Printf("Importados %d costeos (%d omitidos) para el usuario %s\n", imported, skipped, userID)
}

// parseRow convierte una fila del CSV en un costeo con la ganancia derivada.
func parseRow(userID string, rec []string) (*entity.Costeo, error) {
	if len(rec) < 6 {
		return nil, fmt.Errorf("esperaba 6 columnas, hay %d", len(rec))
	}
	name := strings.TrimSpace(rec[0])
	if name == "" {
		return nil, fmt.Errorf("producto vacío")
	}
	nums := make([]decimal.Decimal, 5)
	for i := 0; i < 5; i++ {
		d, err := parseDecimal(rec[i+1])
		if err != nil {
			return nil, fmt.Errorf("columna %d: %w", i+2, err)
		}
		if d.IsNegative() {
			return nil, fmt.Errorf("columna %d: negativo", i+2)
		}
		nums[i] = d
	}
	now := time.Now()
	c := &entity.Costeo{
		ID:                   uuid.New().String(),
		UserID:               userID,
		ProductName:          name,
		ProductCost:          nums[0],
		ShippingCost:         nums[1],
		OtherCosts:           nums[2],
		SuggestedPrice:       nums[3],
		DesiredMarginPercent: nums[4],
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	c.RecalcNetProfit()
	return c, nil
}

// parseDecimal acepta el formato de Excel en español: coma decimal y puntos
// de miles ("49.900,50").
func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	return decimal.NewFromString(s)
}
