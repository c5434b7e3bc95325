package raptor

//*******************************************
// slack provider
//*******************************************

type ISlackProvider interface {
	BoardSlack(slack_index int32) int32
	AlightSlack(slack_index int32) int32
	TransferSlack() int32
}

type SlackParams struct {
	TransferSlack int32 `yaml:"transfer-slack" json:"transfer_slack" validate:"gte=0"`
	BoardSlack    int32 `yaml:"board-slack" json:"board_slack" validate:"gte=0"`
	AlightSlack   int32 `yaml:"alight-slack" json:"alight_slack" validate:"gte=0"`
	// per slack index, overrides the defaults
	BoardSlackForIndex  []int32 `yaml:"board-slack-for-index" json:"board_slack_for_index" validate:"dive,gte=0"`
	AlightSlackForIndex []int32 `yaml:"alight-slack-for-index" json:"alight_slack_for_index" validate:"dive,gte=0"`
}

type DefaultSlackProvider struct {
	params SlackParams
}

func NewDefaultSlackProvider(params SlackParams) *DefaultSlackProvider {
	return &DefaultSlackProvider{
		params: params,
	}
}

func (self *DefaultSlackProvider) BoardSlack(slack_index int32) int32 {
	if slack_index >= 0 && int(slack_index) < len(self.params.BoardSlackForIndex) {
		return self.params.BoardSlackForIndex[slack_index]
	}
	return self.params.BoardSlack
}
func (self *DefaultSlackProvider) AlightSlack(slack_index int32) int32 {
	if slack_index >= 0 && int(slack_index) < len(self.params.AlightSlackForIndex) {
		return self.params.AlightSlackForIndex[slack_index]
	}
	return self.params.AlightSlack
}
func (self *DefaultSlackProvider) TransferSlack() int32 {
	return self.params.TransferSlack
}

//*******************************************
// reverse slack provider
//*******************************************

// Swaps board and alight slack for reverse searches.
type ReverseSlackProvider struct {
	slack ISlackProvider
}

func NewReverseSlackProvider(slack ISlackProvider) *ReverseSlackProvider {
	return &ReverseSlackProvider{
		slack: slack,
	}
}

func (self *ReverseSlackProvider) BoardSlack(slack_index int32) int32 {
	return self.slack.AlightSlack(slack_index)
}
func (self *ReverseSlackProvider) AlightSlack(slack_index int32) int32 {
	return self.slack.BoardSlack(slack_index)
}
func (self *ReverseSlackProvider) TransferSlack() int32 {
	return self.slack.TransferSlack()
}

//*******************************************
// round aware slack provider
//*******************************************

// Adds the transfer slack to the board slack for every boarding after the
// first one.
type RoundSlackProvider struct {
	slack  ISlackProvider
	rounds *RoundTracker
}

func NewRoundSlackProvider(slack ISlackProvider, rounds *RoundTracker) *RoundSlackProvider {
	return &RoundSlackProvider{
		slack:  slack,
		rounds: rounds,
	}
}

func (self *RoundSlackProvider) BoardSlack(slack_index int32) int32 {
	if self.rounds.IsFirstRound() {
		return self.slack.BoardSlack(slack_index)
	}
	return self.slack.BoardSlack(slack_index) + self.slack.TransferSlack()
}
func (self *RoundSlackProvider) AlightSlack(slack_index int32) int32 {
	return self.slack.AlightSlack(slack_index)
}
func (self *RoundSlackProvider) TransferSlack() int32 {
	return self.slack.TransferSlack()
}
