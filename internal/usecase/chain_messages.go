package usecase

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-nft/internal/domain/score"
)

// Contract query messages. Structs keep the encoded form stable so query
// results can be cached by their JSON.

type ownerQuery struct {
	Owner string `json:"owner"`
}

type tokensQuery struct {
	Tokens ownerQuery `json:"tokens"`
}

type allTokensInfoQuery struct {
	AllTokensInfo ownerQuery `json:"all_tokens_info"`
}

type tokenIDQuery struct {
	TokenID string `json:"token_id"`
}

type allNFTInfoQuery struct {
	AllNFTInfo tokenIDQuery `json:"all_nft_info"`
}

type playerInfoArgs struct {
	GameID     int64  `json:"game_id"`
	PlayerAddr string `json:"player_addr"`
}

type playerInfoQuery struct {
	PlayerInfo playerInfoArgs `json:"player_info"`
}

type tokensResponse struct {
	Tokens []string `json:"tokens"`
}

type playerInfoResponse struct {
	LockedTokens []string `json:"locked_tokens"`
}

type nftAccess struct {
	Owner string `json:"owner"`
}

type nftExtension struct {
	AthleteID flexibleID `json:"athlete_id"`
	Name      string     `json:"name"`
	Image     string     `json:"image"`
}

type nftInfo struct {
	TokenURI  string       `json:"token_uri"`
	Extension nftExtension `json:"extension"`
}

type allNFTInfoResponse struct {
	Access nftAccess `json:"access"`
	Info   nftInfo   `json:"info"`
}

// tokenInfoResponse is one entry of all_tokens_info. Score fields are only
// present once the contract has been updated with stats for the token.
type tokenInfoResponse struct {
	TokenID      string             `json:"token_id"`
	TokenInfo    allNFTInfoResponse `json:"token_info"`
	FantasyScore *float64           `json:"fantasy_score"`
	Singles      *float64           `json:"singles"`
	Doubles      *float64           `json:"doubles"`
	Triples      *float64           `json:"triples"`
	HomeRuns     *float64           `json:"home_runs"`
	RunsBattedIn *float64           `json:"runs_batted_in"`
	Walks        *float64           `json:"walks"`
	HitByPitch   *float64           `json:"hit_by_pitch"`
	StolenBases  *float64           `json:"stolen_bases"`
}

// flexibleID accepts an id encoded as a JSON number or string.
type flexibleID int64

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(bytes.Trim(data, `"`)))
	if raw == "" || raw == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("parse id %q: %w", raw, err)
	}
	*f = flexibleID(v)
	return nil
}

func decodeChainResult(raw []byte, out any) error {
	if err := sonic.Unmarshal(raw, out); err != nil {
		return NewUpstreamError(UpstreamKindMalformed, "Failed to parse contract query result", string(raw))
	}
	return nil
}

// upstreamFromChain makes sure a chain failure reaches callers as an
// UpstreamError even when the querier returned a plain error.
func upstreamFromChain(err error) error {
	if err == nil {
		return nil
	}
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream
	}
	return NewUpstreamError(UpstreamKindConnection, "Contract query failed", err.Error())
}

// ScoreView is the flattened score block shown for athletes and tokens.
type ScoreView struct {
	FantasyScore float64 `json:"fantasy_score"`
	Singles      float64 `json:"singles"`
	Doubles      float64 `json:"doubles"`
	Triples      float64 `json:"triples"`
	HomeRuns     float64 `json:"home_runs"`
	RunsBattedIn float64 `json:"runs_batted_in"`
	Walks        float64 `json:"walks"`
	HitByPitch   float64 `json:"hit_by_pitch"`
	StolenBases  float64 `json:"stolen_bases"`
}

func scoreViewFromRecord(r score.Record) ScoreView {
	return ScoreView{}.add(r)
}

func (v ScoreView) add(r score.Record) ScoreView {
	v.FantasyScore = roundScore(v.FantasyScore + r.FantasyScore)
	v.Singles += r.Stats.Singles
	v.Doubles += r.Stats.Doubles
	v.Triples += r.Stats.Triples
	v.HomeRuns += r.Stats.HomeRuns
	v.RunsBattedIn += r.Stats.RunsBattedIn
	v.Walks += r.Stats.Walks
	v.HitByPitch += r.Stats.HitByPitch
	v.StolenBases += r.Stats.StolenBases
	return v
}

func scoreViewFromToken(t tokenInfoResponse) ScoreView {
	if t.FantasyScore == nil {
		return ScoreView{}
	}
	val := func(p *float64) float64 {
		if p == nil {
			return 0
		}
		return *p
	}
	return ScoreView{
		FantasyScore: val(t.FantasyScore),
		Singles:      val(t.Singles),
		Doubles:      val(t.Doubles),
		Triples:      val(t.Triples),
		HomeRuns:     val(t.HomeRuns),
		RunsBattedIn: val(t.RunsBattedIn),
		Walks:        val(t.Walks),
		HitByPitch:   val(t.HitByPitch),
		StolenBases:  val(t.StolenBases),
	}
}
