package mail

// WeightClass restricts which robots may carry an item.
type WeightClass int

const (
	// Light items can be carried by every robot.
	Light WeightClass = iota + 1
	// Heavy items need a robot that can carry heavy items.
	Heavy
)

func (w WeightClass) String() string {
	switch w {
	case Light:
		return "Light"
	case Heavy:
		return "Heavy"
	default:
		return "Unknown"
	}
}
