package persister

import (
	"github.com/marcus/meeple/internal/db"
	"github.com/marcus/meeple/internal/models"
)

// gameValues projects the game-level fields of a remote item. Brief syncs
// omit the play count; stats gate the player/time ranges and owned count.
func (p *Persister) gameValues(item *models.CollectionItem, includeStats, isBrief bool) db.ColumnValues {
	var v db.ColumnValues
	v.Set(db.ColUpdatedList, p.timestamp)
	v.Set(db.ColGameID, item.GameID)
	v.Set(db.ColGameName, item.GameName)
	v.Set(db.ColGameSortName, item.SortName)
	if !isBrief {
		v.Set(db.ColNumPlays, item.NumberOfPlays)
	}
	if includeStats {
		v.Set(db.ColMinPlayers, item.MinPlayers)
		v.Set(db.ColMaxPlayers, item.MaxPlayers)
		v.Set(db.ColPlayingTime, item.PlayingTime)
		v.Set(db.ColMinPlayingTime, item.MinPlayingTime)
		v.Set(db.ColMaxPlayingTime, item.MaxPlayingTime)
		v.Set(db.ColNumberOwned, item.NumberOwned)
	}
	return v
}

// collectionValues projects the collection-entry fields of a remote item.
// The full-refresh timestamp (updated) is stamped only when the pass is
// maximally complete: non-brief with both private info and stats. Every
// pass stamps updated_list. The collection ID is written only when valid so
// a stored ID is never overwritten with the invalid sentinel.
func (p *Persister) collectionValues(item *models.CollectionItem, includeStats, includePrivateInfo, isBrief bool) db.ColumnValues {
	var v db.ColumnValues
	if !isBrief && includePrivateInfo && includeStats {
		v.Set(db.ColUpdated, p.timestamp)
	}
	v.Set(db.ColUpdatedList, p.timestamp)
	v.Set(db.ColGameID, item.GameID)
	if item.CollectionID != models.InvalidID {
		v.Set(db.ColCollectionID, item.CollectionID)
	}
	v.Set(db.ColCollectionName, item.CollectionName)
	v.Set(db.ColCollectionSortName, item.SortName)
	v.Set(db.ColStatusOwn, btoi(item.Status.Own))
	v.Set(db.ColStatusPrevOwned, btoi(item.Status.PreviouslyOwned))
	v.Set(db.ColStatusForTrade, btoi(item.Status.ForTrade))
	v.Set(db.ColStatusWant, btoi(item.Status.Want))
	v.Set(db.ColStatusWantToPlay, btoi(item.Status.WantToPlay))
	v.Set(db.ColStatusWantToBuy, btoi(item.Status.WantToBuy))
	v.Set(db.ColStatusWishlist, btoi(item.Status.Wishlist))
	v.Set(db.ColStatusWishlistPriority, item.Status.WishlistPriority)
	v.Set(db.ColStatusPreOrdered, btoi(item.Status.PreOrdered))
	v.Set(db.ColLastModified, item.LastModified)
	if !isBrief {
		v.Set(db.ColCollectionYear, item.YearPublished)
		v.Set(db.ColCollectionImageURL, item.ImageURL)
		v.Set(db.ColCollectionThumbnailURL, item.ThumbnailURL)
		v.Set(db.ColComment, item.Comment)
		v.Set(db.ColCondition, item.ConditionText)
		v.Set(db.ColWantPartsList, item.WantPartsList)
		v.Set(db.ColHasPartsList, item.HasPartsList)
		v.Set(db.ColWishlistComment, item.WishlistComment)
		if includePrivateInfo {
			v.Set(db.ColPricePaidCurrency, item.PricePaidCurrency)
			v.Set(db.ColPricePaid, item.PricePaid)
			v.Set(db.ColCurrentValueCurrency, item.CurrentValueCurrency)
			v.Set(db.ColCurrentValue, item.CurrentValue)
			v.Set(db.ColQuantity, item.Quantity)
			v.Set(db.ColAcquisitionDate, item.AcquisitionDate)
			v.Set(db.ColAcquiredFrom, item.AcquiredFrom)
			v.Set(db.ColPrivateComment, item.PrivateComment)
		}
	}
	if includeStats {
		v.Set(db.ColRating, item.Rating)
	}
	return v
}

// shadowGroups pairs each dirty-timestamp group with the columns it shadows.
// A non-zero stamp removes every listed column from the update payload.
var shadowGroups = []struct {
	stamp   func(models.DirtyStamps) int64
	columns []db.Column
}{
	{
		stamp: func(d models.DirtyStamps) int64 { return d.Status },
		columns: []db.Column{
			db.ColStatusOwn,
			db.ColStatusPrevOwned,
			db.ColStatusForTrade,
			db.ColStatusWant,
			db.ColStatusWantToBuy,
			db.ColStatusWishlist,
			db.ColStatusWantToPlay,
			db.ColStatusPreOrdered,
			db.ColStatusWishlistPriority,
		},
	},
	{
		stamp:   func(d models.DirtyStamps) int64 { return d.Rating },
		columns: []db.Column{db.ColRating},
	},
	{
		stamp:   func(d models.DirtyStamps) int64 { return d.Comment },
		columns: []db.Column{db.ColComment},
	},
	{
		stamp: func(d models.DirtyStamps) int64 { return d.PrivateInfo },
		columns: []db.Column{
			db.ColAcquiredFrom,
			db.ColAcquisitionDate,
			db.ColPrivateComment,
			db.ColCurrentValue,
			db.ColCurrentValueCurrency,
			db.ColPricePaid,
			db.ColPricePaidCurrency,
			db.ColQuantity,
		},
	},
	{
		stamp:   func(d models.DirtyStamps) int64 { return d.WishlistComment },
		columns: []db.Column{db.ColWishlistComment},
	},
	{
		stamp:   func(d models.DirtyStamps) int64 { return d.TradeCondition },
		columns: []db.Column{db.ColCondition},
	},
	{
		stamp:   func(d models.DirtyStamps) int64 { return d.WantParts },
		columns: []db.Column{db.ColWantPartsList},
	},
	{
		stamp:   func(d models.DirtyStamps) int64 { return d.HasParts },
		columns: []db.Column{db.ColHasPartsList},
	},
}

// stripDirty removes every field group with a pending local edit from the
// update payload. The local edit wins until the outbound sync clears it.
func stripDirty(values *db.ColumnValues, dirty models.DirtyStamps) {
	for _, g := range shadowGroups {
		if g.stamp(dirty) != notDirty {
			values.Remove(g.columns...)
		}
	}
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
