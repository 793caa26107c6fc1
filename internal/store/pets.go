package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rcliao/petlife/internal/model"
)

const petColumns = `id, name, species, breed, birth_date, photo_data, created_at`

func (t *sqlTx) PutPet(ctx context.Context, p model.Pet) error {
	if p.ID == "" {
		return failure("put pet", errors.New("pet id required"))
	}
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO pets (`+petColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			species = excluded.species,
			breed = excluded.breed,
			birth_date = excluded.birth_date,
			photo_data = excluded.photo_data,
			created_at = excluded.created_at`,
		p.ID, p.Name, string(p.Species), p.Breed, p.BirthDate, nullable(p.PhotoData), p.CreatedAt)
	if err != nil {
		return failure("put pet", err)
	}
	return nil
}

func (t *sqlTx) GetPet(ctx context.Context, id string) (*model.Pet, error) {
	row := t.tx.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = ?`, id)
	p, err := scanPet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, failure("get pet", err)
	}
	return &p, nil
}

func (t *sqlTx) ListPets(ctx context.Context) ([]model.Pet, error) {
	rows, err := t.tx.QueryContext(ctx, `SELECT `+petColumns+` FROM pets`)
	if err != nil {
		return nil, failure("list pets", err)
	}
	defer rows.Close()

	pets := []model.Pet{}
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, failure("scan pet", err)
		}
		pets = append(pets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, failure("list pets", err)
	}
	return pets, nil
}

func (t *sqlTx) DeletePet(ctx context.Context, id string) error {
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM pets WHERE id = ?`, id); err != nil {
		return failure("delete pet", err)
	}
	return nil
}

func scanPet(row scanner) (model.Pet, error) {
	var p model.Pet
	var species string
	var photo sql.NullString

	err := row.Scan(&p.ID, &p.Name, &species, &p.Breed, &p.BirthDate, &photo, &p.CreatedAt)
	if err != nil {
		return p, err
	}
	p.Species = model.Species(species)
	if photo.Valid {
		p.PhotoData = photo.String
	}
	return p, nil
}
