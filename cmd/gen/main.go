package main

import (
	"shelflife/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.UserModel{},
		model.CustomerProfileModel{},
		model.StoreProfileModel{},
		model.AuthenticationModel{},
		model.ProductModel{},
		model.PurchaseRecordModel{},
		model.PurchaseItemModel{},
		model.NotificationSettingsModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
