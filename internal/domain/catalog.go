package domain

// Category groups menu items. Deleting a category cascades to its items;
// the cascade is performed by the store, never recomputed locally.
type Category struct {
	ID   int64  `bson:"_id" json:"id"`
	Name string `bson:"name" json:"name"`
}

type MenuItem struct {
	ID          int64   `bson:"_id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Price       float64 `bson:"price" json:"price"`
	CategoryID  int64   `bson:"category_id" json:"category_id"`
	IsNonVeg    bool    `bson:"is_non_veg" json:"is_non_veg"`
	IsAvailable bool    `bson:"is_available" json:"is_available"`
	ImagePath   string  `bson:"image_path,omitempty" json:"image_path,omitempty"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
}
