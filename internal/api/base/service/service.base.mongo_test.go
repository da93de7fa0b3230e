package basesvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestToUpdateData_PassesThroughUpdateData(t *testing.T) {
	original := &UpdateData{Set: map[string]interface{}{"phone": "0123"}}

	update, err := ToUpdateData(original)
	if err != nil {
		t.Fatalf("ToUpdateData báo lỗi: %v", err)
	}
	if update != original {
		t.Error("con trỏ *UpdateData phải được trả về nguyên vẹn")
	}

	byValue, err := ToUpdateData(UpdateData{Unset: map[string]interface{}{"reminderDate": ""}})
	if err != nil {
		t.Fatalf("ToUpdateData báo lỗi: %v", err)
	}
	if byValue == nil || byValue.Unset["reminderDate"] != "" {
		t.Errorf("UpdateData theo giá trị không được chuyển đúng: %+v", byValue)
	}
}

func TestToUpdateData_WrapsPlainMapInSet(t *testing.T) {
	update, err := ToUpdateData(bson.M{"companyName": "Acme GmbH", "inactive": true})
	if err != nil {
		t.Fatalf("ToUpdateData báo lỗi: %v", err)
	}

	if update.Set["companyName"] != "Acme GmbH" {
		t.Errorf("map thường phải được wrap trong Set, got %+v", update.Set)
	}
	if update.Set["inactive"] != true {
		t.Errorf("inactive = %v", update.Set["inactive"])
	}
	if update.Unset != nil || update.Push != nil || update.Max != nil {
		t.Error("map thường không được sinh operator nào khác")
	}
}

func TestToUpdateData_ExtractsMongoOperators(t *testing.T) {
	update, err := ToUpdateData(bson.M{
		"$set":   bson.M{"lastContact": int64(1717200000000)},
		"$unset": bson.M{"reminderDate": ""},
		"$push":  bson.M{"notes": "n1"},
		"$max":   bson.M{"lastContact": int64(1717200000000)},
	})
	if err != nil {
		t.Fatalf("ToUpdateData báo lỗi: %v", err)
	}

	if v, ok := update.Set["lastContact"].(int64); !ok || v != 1717200000000 {
		t.Errorf("$set không được trích đúng: %+v", update.Set)
	}
	if _, ok := update.Unset["reminderDate"]; !ok {
		t.Errorf("$unset không được trích đúng: %+v", update.Unset)
	}
	if update.Push["notes"] != "n1" {
		t.Errorf("$push không được trích đúng: %+v", update.Push)
	}
	if v, ok := update.Max["lastContact"].(int64); !ok || v != 1717200000000 {
		t.Errorf("$max không được trích đúng: %+v", update.Max)
	}
	if update.SetOnInsert != nil {
		t.Errorf("không truyền $setOnInsert thì phải nil, got %+v", update.SetOnInsert)
	}
}

func TestToUpdateData_SetOnlyShorthand(t *testing.T) {
	update, err := ToUpdateData(bson.M{"$set": bson.M{"phone": "0987"}})
	if err != nil {
		t.Fatalf("ToUpdateData báo lỗi: %v", err)
	}
	if update.Set["phone"] != "0987" {
		t.Errorf("Set = %+v", update.Set)
	}
}
