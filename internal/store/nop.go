package store

import "context"

// NopWriter is a VacancyWriter used in check mode. It stores nothing and hands
// out increasing ids so a harvest can run end to end without a database.
type NopWriter struct {
	nextID int64
}

func NewNopWriter() *NopWriter { return &NopWriter{} }

func (w *NopWriter) InsertCompany(_ context.Context, _ string) (int64, error) {
	w.nextID++
	return w.nextID, nil
}

func (w *NopWriter) InsertVacancy(_ context.Context, _ *int64, _ string, _, _ *float64, _ string) (int64, error) {
	w.nextID++
	return w.nextID, nil
}
