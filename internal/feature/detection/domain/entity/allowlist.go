package entity

// AllowedAnimals はモデルのクラスIDと、有効な検出として扱う動物名の対応表です。
var AllowedAnimals = map[int]string{
	0: "Elephant",
	1: "Hyena",
	2: "Leopard",
	3: "Lion",
	4: "Wild Boar",
}

var allowedAnimalNames = func() map[string]struct{} {
	m := make(map[string]struct{}, len(AllowedAnimals))
	for _, name := range AllowedAnimals {
		m[name] = struct{}{}
	}
	return m
}()

// IsAllowedAnimal はクラス名が許可リストに含まれるかを返します。大文字小文字は区別します。
func IsAllowedAnimal(class string) bool {
	_, ok := allowedAnimalNames[class]
	return ok
}
