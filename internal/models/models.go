package models

import (
	"fmt"
	"strings"
)

// InvalidID marks an absent game or collection ID.
const InvalidID = -1

// Status represents a collection status category on the remote service.
type Status string

const (
	StatusOwn        Status = "own"
	StatusPrevOwned  Status = "prevowned"
	StatusForTrade   Status = "fortrade"
	StatusWant       Status = "want"
	StatusWantToPlay Status = "wanttoplay"
	StatusWantToBuy  Status = "wanttobuy"
	StatusWishlist   Status = "wishlist"
	StatusPreOrdered Status = "preordered"
	StatusPlayed     Status = "played"
)

// AllStatuses lists every status category in display order.
var AllStatuses = []Status{
	StatusOwn,
	StatusPrevOwned,
	StatusForTrade,
	StatusWant,
	StatusWantToPlay,
	StatusWantToBuy,
	StatusWishlist,
	StatusPreOrdered,
	StatusPlayed,
}

// ParseStatus validates a status name from config or CLI input.
func ParseStatus(s string) (Status, error) {
	name := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllStatuses {
		if name == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown status %q (valid: %s)", s, StatusNames())
}

// StatusNames returns a comma-separated list of valid status names.
func StatusNames() string {
	names := make([]string, len(AllStatuses))
	for i, s := range AllStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// StatusFlags holds the boolean status categories of a collection entry.
// StatusPlayed is derived from the play count, not a stored flag.
type StatusFlags struct {
	Own              bool
	PreviouslyOwned  bool
	ForTrade         bool
	Want             bool
	WantToPlay       bool
	WantToBuy        bool
	Wishlist         bool
	WishlistPriority int
	PreOrdered       bool
}

// Set returns the statuses whose flag is raised.
func (f StatusFlags) Set() []Status {
	var out []Status
	if f.Own {
		out = append(out, StatusOwn)
	}
	if f.PreviouslyOwned {
		out = append(out, StatusPrevOwned)
	}
	if f.ForTrade {
		out = append(out, StatusForTrade)
	}
	if f.Want {
		out = append(out, StatusWant)
	}
	if f.WantToPlay {
		out = append(out, StatusWantToPlay)
	}
	if f.WantToBuy {
		out = append(out, StatusWantToBuy)
	}
	if f.Wishlist {
		out = append(out, StatusWishlist)
	}
	if f.PreOrdered {
		out = append(out, StatusPreOrdered)
	}
	return out
}

// CollectionItem is one item decoded from a remote collection response.
// Immutable for the duration of a sync pass.
type CollectionItem struct {
	GameID         int
	CollectionID   int // InvalidID when the server has not assigned one
	GameName       string
	CollectionName string
	SortName       string

	YearPublished int
	ImageURL      string
	ThumbnailURL  string

	MinPlayers     int
	MaxPlayers     int
	PlayingTime    int
	MinPlayingTime int
	MaxPlayingTime int
	NumberOwned    int
	NumberOfPlays  int

	Status StatusFlags

	Rating float64

	Comment         string
	ConditionText   string
	WantPartsList   string
	HasPartsList    string
	WishlistComment string

	PricePaid            float64
	PricePaidCurrency    string
	CurrentValue         float64
	CurrentValueCurrency string
	Quantity             int
	AcquisitionDate      string
	AcquiredFrom         string
	PrivateComment       string

	LastModified int64 // unix millis
}

// DirtyStamps carries the per-field-group dirty timestamps of a stored
// collection row. Zero means clean; any other value means an unsynced
// local edit exists and the group must not be overwritten from remote data.
type DirtyStamps struct {
	Whole           int64
	Status          int64
	Rating          int64
	Comment         int64
	PrivateInfo     int64
	WishlistComment int64
	TradeCondition  int64
	WantParts       int64
	HasParts        int64
}

// Any reports whether any field group has a pending local edit.
func (d DirtyStamps) Any() bool {
	return d.Whole != 0 || d.Status != 0 || d.Rating != 0 || d.Comment != 0 ||
		d.PrivateInfo != 0 || d.WishlistComment != 0 || d.TradeCondition != 0 ||
		d.WantParts != 0 || d.HasParts != 0
}

// CollectionSnapshot is the dirty-state view of a stored collection row,
// used to decide which remote field groups may be applied.
type CollectionSnapshot struct {
	InternalID int64
	Dirty      DirtyStamps
}

// Game is a stored game row. Shared metadata, not user-editable, so it has
// no dirty-state concept: remote data always overwrites it.
type Game struct {
	GameID         int
	Name           string
	SortName       string
	NumPlays       int
	MinPlayers     int
	MaxPlayers     int
	PlayingTime    int
	MinPlayingTime int
	MaxPlayingTime int
	NumberOwned    int
	UpdatedList    int64
}

// CollectionEntry is a stored collection row as read back for display and
// local edits.
type CollectionEntry struct {
	InternalID   int64
	GameID       int
	CollectionID int // InvalidID when unassigned
	Name         string
	SortName     string

	Status StatusFlags
	Rating float64

	Comment         string
	ConditionText   string
	WantPartsList   string
	HasPartsList    string
	WishlistComment string

	YearPublished int
	ImageURL      string
	ThumbnailURL  string

	PricePaid            float64
	PricePaidCurrency    string
	CurrentValue         float64
	CurrentValueCurrency string
	Quantity             int
	AcquisitionDate      string
	AcquiredFrom         string
	PrivateComment       string

	LastModified int64
	Updated      int64
	UpdatedList  int64

	Dirty DirtyStamps
}
