package gazetteer

import "github.com/okian/tianwen/internal/domain/model"

// capitals is the built-in table of historical capitals. Coordinates are
// the modern city centre.
var capitals = []Site{
	{
		Info: model.SiteInfo{
			Name: "长安", ModernName: "西安",
			Dynasties: []string{"西周", "西汉", "新", "隋", "唐"},
			Lat:       34.27, Lon: 108.95,
		},
		Aliases: []string{"西安", "镐京", "大兴", "京兆"},
	},
	{
		Info: model.SiteInfo{
			Name: "洛阳", ModernName: "洛阳",
			Dynasties: []string{"东周", "东汉", "曹魏", "西晋", "北魏", "武周"},
			Lat:       34.62, Lon: 112.45,
		},
		Aliases: []string{"洛邑", "雒阳", "东都", "神都"},
	},
	{
		Info: model.SiteInfo{
			Name: "开封", ModernName: "开封",
			Dynasties: []string{"后梁", "后晋", "后汉", "后周", "北宋"},
			Lat:       34.80, Lon: 114.31,
		},
		Aliases: []string{"汴京", "汴梁", "东京", "大梁"},
	},
	{
		Info: model.SiteInfo{
			Name: "南京", ModernName: "南京",
			Dynasties: []string{"东吴", "东晋", "南朝宋", "南齐", "南梁", "南陈", "明"},
			Lat:       32.06, Lon: 118.80,
		},
		Aliases: []string{"建康", "金陵", "建业", "应天"},
	},
	{
		Info: model.SiteInfo{
			Name: "北京", ModernName: "北京",
			Dynasties: []string{"金", "元", "明", "清"},
			Lat:       39.90, Lon: 116.40,
		},
		Aliases: []string{"大都", "燕京", "中都", "顺天", "北平"},
	},
	{
		Info: model.SiteInfo{
			Name: "临安", ModernName: "杭州",
			Dynasties: []string{"吴越", "南宋"},
			Lat:       30.27, Lon: 120.16,
		},
		Aliases: []string{"杭州", "钱塘"},
	},
	{
		Info: model.SiteInfo{
			Name: "殷", ModernName: "安阳",
			Dynasties: []string{"商"},
			Lat:       36.10, Lon: 114.39,
		},
		Aliases: []string{"安阳", "殷墟"},
	},
	{
		Info: model.SiteInfo{
			Name: "咸阳", ModernName: "咸阳",
			Dynasties: []string{"秦"},
			Lat:       34.33, Lon: 108.71,
		},
	},
	{
		Info: model.SiteInfo{
			Name: "曲阜", ModernName: "曲阜",
			Dynasties: []string{"鲁"},
			Lat:       35.60, Lon: 116.99,
		},
	},
	{
		Info: model.SiteInfo{
			Name: "临淄", ModernName: "淄博",
			Dynasties: []string{"齐"},
			Lat:       36.82, Lon: 118.31,
		},
	},
	{
		Info: model.SiteInfo{
			Name: "邯郸", ModernName: "邯郸",
			Dynasties: []string{"赵"},
			Lat:       36.61, Lon: 114.49,
		},
	},
}
