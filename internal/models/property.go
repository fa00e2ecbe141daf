package models

type Property struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Type        string   `json:"type"`
	Beds        int      `json:"beds"`
	Baths       int      `json:"baths"`
	Area        float64  `json:"area"`
	Country     string   `json:"country"`
	City        string   `json:"city"`
	Address     string   `json:"address"`
	Images      []string `json:"images"`
	Views       int      `json:"views"`
	Status      string   `json:"status"`
	OwnerID     string   `json:"ownerId"`
}

type PropertyPage struct {
	Items []Property `json:"data"`
	Total int        `json:"total"`
}

type PropertyForm struct {
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
	Price       string `form:"price" json:"price"`
	Type        string `form:"type" json:"type"`
	Beds        string `form:"beds" json:"beds"`
	Baths       string `form:"baths" json:"baths"`
	Area        string `form:"area" json:"area"`
	Country     string `form:"country" json:"country"`
	City        string `form:"city" json:"city"`
	Address     string `form:"address" json:"address"`
}
