package tdf

type Stop struct {
	PrimaryIdentifier string `groups:"basic"`

	PrimaryName string `groups:"basic"`

	Location *Location `groups:"basic"`
}
