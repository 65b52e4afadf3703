package bgg

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/marcus/meeple/internal/models"
)

// The wire format uses attributes for flags and elements for free text.
// Numeric attributes may be absent or non-numeric ("N/A"), so everything is
// decoded as strings first and converted leniently.

type itemsXML struct {
	XMLName xml.Name  `xml:"items"`
	Items   []itemXML `xml:"item"`
}

type itemXML struct {
	ObjectID int     `xml:"objectid,attr"`
	CollID   int     `xml:"collid,attr"`
	Name     nameXML `xml:"name"`

	YearPublished int    `xml:"yearpublished"`
	Image         string `xml:"image"`
	Thumbnail     string `xml:"thumbnail"`
	NumPlays      int    `xml:"numplays"`

	Status statusXML `xml:"status"`
	Stats  *statsXML  `xml:"stats"`

	Comment         string          `xml:"comment"`
	ConditionText   string          `xml:"conditiontext"`
	WantPartsList   string          `xml:"wantpartslist"`
	HasPartsList    string          `xml:"haspartslist"`
	WishlistComment string          `xml:"wishlistcomment"`
	PrivateInfo     *privateInfoXML `xml:"privateinfo"`
}

type nameXML struct {
	Value     string `xml:",chardata"`
	SortIndex int    `xml:"sortindex,attr"`
}

type statusXML struct {
	Own              int    `xml:"own,attr"`
	PrevOwned        int    `xml:"prevowned,attr"`
	ForTrade         int    `xml:"fortrade,attr"`
	Want             int    `xml:"want,attr"`
	WantToPlay       int    `xml:"wanttoplay,attr"`
	WantToBuy        int    `xml:"wanttobuy,attr"`
	Wishlist         int    `xml:"wishlist,attr"`
	WishlistPriority int    `xml:"wishlistpriority,attr"`
	PreOrdered       int    `xml:"preordered,attr"`
	LastModified     string `xml:"lastmodified,attr"`
}

type statsXML struct {
	MinPlayers  int       `xml:"minplayers,attr"`
	MaxPlayers  int       `xml:"maxplayers,attr"`
	MinPlayTime int       `xml:"minplaytime,attr"`
	MaxPlayTime int       `xml:"maxplaytime,attr"`
	PlayingTime int       `xml:"playingtime,attr"`
	NumOwned    int       `xml:"numowned,attr"`
	Rating      ratingXML `xml:"rating"`
}

type ratingXML struct {
	Value string `xml:"value,attr"`
}

type privateInfoXML struct {
	PricePaidCurrency    string `xml:"pp_currency,attr"`
	PricePaid            string `xml:"pricepaid,attr"`
	CurrentValueCurrency string `xml:"cv_currency,attr"`
	CurrentValue         string `xml:"currvalue,attr"`
	Quantity             int    `xml:"quantity,attr"`
	AcquisitionDate      string `xml:"acquisitiondate,attr"`
	AcquiredFrom         string `xml:"acquiredfrom,attr"`
	PrivateComment       string `xml:"privatecomment"`
}

func decodeCollection(r io.Reader) ([]models.CollectionItem, error) {
	var doc itemsXML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}

	items := make([]models.CollectionItem, 0, len(doc.Items))
	for _, x := range doc.Items {
		items = append(items, x.toModel())
	}
	return items, nil
}

func (x itemXML) toModel() models.CollectionItem {
	item := models.CollectionItem{
		GameID:         x.ObjectID,
		CollectionID:   models.InvalidID,
		GameName:       x.Name.Value,
		CollectionName: x.Name.Value,
		SortName:       sortName(x.Name.Value, x.Name.SortIndex),
		YearPublished:  x.YearPublished,
		ImageURL:       x.Image,
		ThumbnailURL:   x.Thumbnail,
		NumberOfPlays:  x.NumPlays,
		Status: models.StatusFlags{
			Own:              x.Status.Own != 0,
			PreviouslyOwned:  x.Status.PrevOwned != 0,
			ForTrade:         x.Status.ForTrade != 0,
			Want:             x.Status.Want != 0,
			WantToPlay:       x.Status.WantToPlay != 0,
			WantToBuy:        x.Status.WantToBuy != 0,
			Wishlist:         x.Status.Wishlist != 0,
			WishlistPriority: x.Status.WishlistPriority,
			PreOrdered:       x.Status.PreOrdered != 0,
		},
		Comment:         strings.TrimSpace(x.Comment),
		ConditionText:   strings.TrimSpace(x.ConditionText),
		WantPartsList:   strings.TrimSpace(x.WantPartsList),
		HasPartsList:    strings.TrimSpace(x.HasPartsList),
		WishlistComment: strings.TrimSpace(x.WishlistComment),
		LastModified:    parseLastModified(x.Status.LastModified),
	}
	if x.CollID > 0 {
		item.CollectionID = x.CollID
	}
	if x.Stats != nil {
		item.MinPlayers = x.Stats.MinPlayers
		item.MaxPlayers = x.Stats.MaxPlayers
		item.MinPlayingTime = x.Stats.MinPlayTime
		item.MaxPlayingTime = x.Stats.MaxPlayTime
		item.PlayingTime = x.Stats.PlayingTime
		item.NumberOwned = x.Stats.NumOwned
		item.Rating = parseDecimal(x.Stats.Rating.Value)
	}
	if x.PrivateInfo != nil {
		item.PricePaidCurrency = x.PrivateInfo.PricePaidCurrency
		item.PricePaid = parseDecimal(x.PrivateInfo.PricePaid)
		item.CurrentValueCurrency = x.PrivateInfo.CurrentValueCurrency
		item.CurrentValue = parseDecimal(x.PrivateInfo.CurrentValue)
		item.Quantity = x.PrivateInfo.Quantity
		item.AcquisitionDate = x.PrivateInfo.AcquisitionDate
		item.AcquiredFrom = x.PrivateInfo.AcquiredFrom
		item.PrivateComment = strings.TrimSpace(x.PrivateInfo.PrivateComment)
	}
	return item
}

// sortName drops the leading article indicated by the 1-based sort index
// ("The Castles of Burgundy", index 5 -> "Castles of Burgundy").
func sortName(name string, sortIndex int) string {
	if sortIndex > 1 && sortIndex <= len(name) {
		return name[sortIndex-1:]
	}
	return name
}

// parseDecimal converts a numeric attribute, tolerating "" and "N/A".
func parseDecimal(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// parseLastModified converts the server's timestamp attribute to unix
// millis; 0 when absent or unparseable.
func parseLastModified(s string) int64 {
	if s == "" {
		return 0
	}
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		return 0
	}
	return t.UnixMilli()
}
