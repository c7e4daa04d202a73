// Package card gives a typed view over a recovered character card.
//
// Three layouts exist in the wild. V1 cards keep every field at the top level;
// V2 ("chara_card_v2") and V3 ("chara_card_v3") cards wrap them in a "data"
// object next to "spec" and "spec_version". [FromValue] accepts all three and
// normalises them into a [Card]. Nothing is validated: missing fields stay
// empty and unknown ones are ignored, except under "extensions" which is kept
// verbatim.
package card
