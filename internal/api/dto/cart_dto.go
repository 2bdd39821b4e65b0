package dto

// ShoppingListItem 购物清单聚合条目
type ShoppingListItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	TotalAmount     int    `json:"total_amount"`
}

// ShoppingListData 购物清单导出数据
type ShoppingListData struct {
	Username string             `json:"username"`
	Items    []ShoppingListItem `json:"items"`
	Report   string             `json:"report"`
}
