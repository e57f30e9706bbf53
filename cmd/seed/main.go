// Command seed loads a working demo dataset: staff accounts, dining zones,
// tables and the weekly slot template. It wipes reservation data first, so
// it is only meant for development and demo environments.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/elfogon/restaurant-reservations/internal/config"
	"github.com/elfogon/restaurant-reservations/internal/database"
	"github.com/elfogon/restaurant-reservations/internal/repository"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Cleanup in FK-safe order.
	log.Println("cleaning old data...")
	for _, table := range []string{"reservas", "turnos", "mesas", "zonas", "refresh_tokens", "users"} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			log.Fatalf("cleanup %s: %v", table, err)
		}
	}

	users := repository.NewUserRepo(db)
	zones := repository.NewZoneRepo(db)
	tables := repository.NewTableRepo(db)
	slots := repository.NewSlotRepo(db)

	log.Println("creating staff accounts...")
	if _, err := users.Create(ctx, "Administrador", "admin@elfogon.es", "admin123", "ADMIN", cfg.BcryptCost); err != nil {
		log.Fatalf("create admin: %v", err)
	}
	if _, err := users.Create(ctx, "Camarero Demo", "camarero@elfogon.es", "camarero123", "WAITER", cfg.BcryptCost); err != nil {
		log.Fatalf("create waiter: %v", err)
	}

	log.Println("creating zones and tables...")
	zoneNames := []string{"Salón", "Terraza", "Barra"}
	capacities := map[string][]uint32{
		"Salón":   {2, 2, 4, 4, 6, 8},
		"Terraza": {2, 4, 4, 6},
		"Barra":   {2, 2, 2},
	}
	for _, name := range zoneNames {
		z := &repository.Zone{Name: name}
		if err := zones.Create(ctx, z); err != nil {
			log.Fatalf("create zone %s: %v", name, err)
		}
		for i, seats := range capacities[name] {
			desc := fmt.Sprintf("Mesa de %d en %s", seats, name)
			t := &repository.Table{
				Number:      uint32(i + 1),
				Capacity:    seats,
				Description: &desc,
				Zone:        *z,
			}
			if err := tables.Create(ctx, t); err != nil {
				log.Fatalf("create table %d in %s: %v", i+1, name, err)
			}
		}
	}

	log.Println("creating weekly slot template...")
	weekdays := []string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}
	lunch := []string{"13:00", "13:30", "14:00", "15:00"}
	dinner := []string{"20:00", "20:30", "21:00", "22:00"}
	for _, day := range weekdays {
		times := lunch
		// Dinner service runs every day except Sunday and Monday.
		if day != "Domingo" && day != "Lunes" {
			times = append(append([]string{}, lunch...), dinner...)
		}
		for _, hhmm := range times {
			if err := slots.Create(ctx, &repository.Slot{Weekday: day, Time: hhmm}); err != nil {
				log.Fatalf("create slot %s %s: %v", day, hhmm, err)
			}
		}
	}

	log.Println("seed completed")
	log.Println("test accounts:")
	log.Println("  admin@elfogon.es / admin123 (ADMIN)")
	log.Println("  camarero@elfogon.es / camarero123 (WAITER)")
}
