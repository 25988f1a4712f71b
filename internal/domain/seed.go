package domain

// SeedProducts стартовый каталог, загружается при первом запуске,
// когда сохранённого состояния ещё нет
func SeedProducts() []Product {
	return []Product{
		// Fruits & Vegetables
		{ID: "1", Name: "Apples", Barcode: "1001", Price: 150, Category: "Fruits", Stock: 50, Unit: "kg"},
		{ID: "2", Name: "Bananas", Barcode: "1002", Price: 60, Category: "Fruits", Stock: 30, Unit: "dozen"},
		{ID: "3", Name: "Oranges", Barcode: "1003", Price: 80, Category: "Fruits", Stock: 40, Unit: "kg"},
		{ID: "4", Name: "Tomatoes", Barcode: "1004", Price: 40, Category: "Vegetables", Stock: 25, Unit: "kg"},
		{ID: "5", Name: "Onions", Barcode: "1005", Price: 30, Category: "Vegetables", Stock: 50, Unit: "kg"},
		{ID: "6", Name: "Potatoes", Barcode: "1006", Price: 25, Category: "Vegetables", Stock: 60, Unit: "kg"},

		// Dairy & Eggs
		{ID: "7", Name: "Milk 1L", Barcode: "2001", Price: 55, Category: "Dairy", Stock: 20, Unit: "piece"},
		{ID: "8", Name: "Eggs", Barcode: "2002", Price: 80, Category: "Dairy", Stock: 15, Unit: "dozen"},
		{ID: "9", Name: "Paneer", Barcode: "2003", Price: 300, Category: "Dairy", Stock: 10, Unit: "kg"},
		{ID: "10", Name: "Butter", Barcode: "2004", Price: 250, Category: "Dairy", Stock: 8, Unit: "piece"},

		// Grains & Pulses
		{ID: "11", Name: "Rice Basmati", Barcode: "3001", Price: 120, Category: "Grains", Stock: 30, Unit: "kg"},
		{ID: "12", Name: "Wheat Flour", Barcode: "3002", Price: 40, Category: "Grains", Stock: 25, Unit: "kg"},
		{ID: "13", Name: "Toor Dal", Barcode: "3003", Price: 150, Category: "Pulses", Stock: 20, Unit: "kg"},
		{ID: "14", Name: "Chana Dal", Barcode: "3004", Price: 100, Category: "Pulses", Stock: 18, Unit: "kg"},

		// Snacks & Beverages
		{ID: "15", Name: "Biscuits Pack", Barcode: "4001", Price: 45, Category: "Snacks", Stock: 50, Unit: "piece"},
		{ID: "16", Name: "Chips", Barcode: "4002", Price: 20, Category: "Snacks", Stock: 40, Unit: "piece"},
		{ID: "17", Name: "Cold Drink", Barcode: "4003", Price: 35, Category: "Beverages", Stock: 30, Unit: "piece"},
		{ID: "18", Name: "Tea Leaves", Barcode: "4004", Price: 180, Category: "Beverages", Stock: 15, Unit: "kg"},

		// Household Items
		{ID: "19", Name: "Detergent", Barcode: "5001", Price: 180, Category: "Household", Stock: 12, Unit: "piece"},
		{ID: "20", Name: "Soap", Barcode: "5002", Price: 25, Category: "Household", Stock: 25, Unit: "piece"},
	}
}
