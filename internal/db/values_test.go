package db

import (
	"reflect"
	"testing"
)

func TestColumnValuesSetReplaces(t *testing.T) {
	var v ColumnValues
	v.Set(ColGameName, "Catan")
	v.Set(ColGameName, "Azul")
	v.Set(ColNumPlays, 3)

	if v.Len() != 2 {
		t.Fatalf("len: got %d, want 2", v.Len())
	}
	if got := v.String(ColGameName); got != "Azul" {
		t.Errorf("value: got %q, want Azul", got)
	}
}

func TestColumnValuesRemove(t *testing.T) {
	var v ColumnValues
	v.Set(ColRating, 7.5)
	v.Set(ColComment, "nice")
	v.Set(ColCondition, "mint")

	v.Remove(ColRating, ColCondition, ColWishlistComment) // last one absent

	if v.Has(ColRating) || v.Has(ColCondition) {
		t.Error("removed columns still present")
	}
	if !v.Has(ColComment) {
		t.Error("untouched column lost")
	}
}

func TestColumnValuesString(t *testing.T) {
	var v ColumnValues
	v.Set(ColComment, "hello")
	v.Set(ColNumPlays, 3)

	if got := v.String(ColComment); got != "hello" {
		t.Errorf("string value: got %q", got)
	}
	if got := v.String(ColNumPlays); got != "" {
		t.Errorf("non-string value: got %q, want empty", got)
	}
	if got := v.String(ColRating); got != "" {
		t.Errorf("absent value: got %q, want empty", got)
	}
}

func TestColumnValuesSQL(t *testing.T) {
	var v ColumnValues
	v.Set(ColGameID, 13)
	v.Set(ColGameName, "Catan")

	query, args := v.InsertSQL("games")
	wantQuery := "INSERT INTO games (game_id, game_name) VALUES (?, ?)"
	if query != wantQuery {
		t.Errorf("insert query: got %q, want %q", query, wantQuery)
	}
	if !reflect.DeepEqual(args, []any{13, "Catan"}) {
		t.Errorf("insert args: got %v", args)
	}

	query, args = v.UpdateSQL("games", "game_id = ?", 13)
	wantQuery = "UPDATE games SET game_id = ?, game_name = ? WHERE game_id = ?"
	if query != wantQuery {
		t.Errorf("update query: got %q, want %q", query, wantQuery)
	}
	if !reflect.DeepEqual(args, []any{13, "Catan", 13}) {
		t.Errorf("update args: got %v", args)
	}
}
