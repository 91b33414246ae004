package server

// WeaponClass groups catalog entries into the slots the client exposes.
type WeaponClass string

const (
	WeaponClassDefault   WeaponClass = "default"
	WeaponClassPrimary   WeaponClass = "primary"
	WeaponClassSecondary WeaponClass = "secondary"
)

// WeaponStats holds the combat profile for one catalog entry. Speed is a
// multiplier applied to the base swing cooldown; damage, knockback, and
// reach feed straight into swing resolution.
type WeaponStats struct {
	Name      string      `json:"name"`
	Class     WeaponClass `json:"class"`
	Speed     float64     `json:"speed"`
	Damage    int         `json:"damage"`
	Knockback float64     `json:"knockback"`
	Reach     float64     `json:"reach"`
}

// weaponCatalog is the closed set of weapons the server recognizes. Hands is
// the baseline every other entry trades off against.
var weaponCatalog = []WeaponStats{
	{Name: "hands", Class: WeaponClassDefault, Speed: 1.0, Damage: 10, Knockback: 40, Reach: 70},

	{Name: "bat", Class: WeaponClassPrimary, Speed: 0.9, Damage: 15, Knockback: 50, Reach: 80},
	{Name: "axe", Class: WeaponClassPrimary, Speed: 0.8, Damage: 18, Knockback: 60, Reach: 85},
	{Name: "spear", Class: WeaponClassPrimary, Speed: 1.0, Damage: 14, Knockback: 45, Reach: 120},
	{Name: "dagger", Class: WeaponClassPrimary, Speed: 1.5, Damage: 8, Knockback: 10, Reach: 60},
	{Name: "short sword", Class: WeaponClassPrimary, Speed: 1.1, Damage: 12, Knockback: 30, Reach: 75},

	{Name: "battle axe", Class: WeaponClassPrimary, Speed: 0.7, Damage: 25, Knockback: 80, Reach: 95},
	{Name: "trident", Class: WeaponClassPrimary, Speed: 1.0, Damage: 16, Knockback: 50, Reach: 130},
	{Name: "javelin", Class: WeaponClassPrimary, Speed: 1.0, Damage: 15, Knockback: 20, Reach: 100},
	{Name: "dual daggers", Class: WeaponClassPrimary, Speed: 1.8, Damage: 9, Knockback: 10, Reach: 65},
	{Name: "long sword", Class: WeaponClassPrimary, Speed: 1.0, Damage: 18, Knockback: 45, Reach: 90},

	{Name: "shield", Class: WeaponClassSecondary, Speed: 0.5, Damage: 5, Knockback: 70, Reach: 50},
	{Name: "throwing knife", Class: WeaponClassSecondary, Speed: 1.6, Damage: 7, Knockback: 5, Reach: 80},
	{Name: "hammer", Class: WeaponClassSecondary, Speed: 0.6, Damage: 22, Knockback: 80, Reach: 80},
	{Name: "gloves", Class: WeaponClassSecondary, Speed: 1.7, Damage: 6, Knockback: 15, Reach: 60},
	{Name: "boomerang", Class: WeaponClassSecondary, Speed: 1.0, Damage: 10, Knockback: 25, Reach: 100},

	{Name: "spiked shield", Class: WeaponClassSecondary, Speed: 0.5, Damage: 8, Knockback: 75, Reach: 55},
	{Name: "crossknife", Class: WeaponClassSecondary, Speed: 1.6, Damage: 7, Knockback: 5, Reach: 85},
	{Name: "war hammer", Class: WeaponClassSecondary, Speed: 0.5, Damage: 30, Knockback: 100, Reach: 90},
	{Name: "brass knuckles", Class: WeaponClassSecondary, Speed: 1.2, Damage: 12, Knockback: 40, Reach: 60},
}

var weaponsByName = func() map[string]WeaponStats {
	index := make(map[string]WeaponStats, len(weaponCatalog))
	for _, stats := range weaponCatalog {
		index[stats.Name] = stats
	}
	return index
}()

// WeaponByName looks up a catalog entry. The second return reports whether
// the name is known; callers fall back to hands when it is not.
func WeaponByName(name string) (WeaponStats, bool) {
	stats, ok := weaponsByName[name]
	return stats, ok
}

// WeaponNames returns the catalog names in definition order for the init
// handshake.
func WeaponNames() []string {
	names := make([]string, 0, len(weaponCatalog))
	for _, stats := range weaponCatalog {
		names = append(names, stats.Name)
	}
	return names
}
